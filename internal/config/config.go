package config

import "time"

type Config struct {
	APIBaseURL         string `json:"apiBaseUrl"`
	TimeoutSecs        int    `json:"timeoutSecs"`
	SuccessDisplaySecs int    `json:"successDisplaySecs"`
	Theme              string `json:"theme"`
	Demo               bool   `json:"demo"`
	DemoDir            string `json:"demoDir"`
}

type fileConfig struct {
	APIBaseURL         *string `json:"apiBaseUrl"`
	TimeoutSecs        *int    `json:"timeoutSecs"`
	SuccessDisplaySecs *int    `json:"successDisplaySecs"`
	Theme              *string `json:"theme"`
	Demo               *bool   `json:"demo"`
	DemoDir            *string `json:"demoDir"`
}

func (config Config) Timeout() time.Duration {
	if config.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(config.TimeoutSecs) * time.Second
}

func (config Config) SuccessDisplay() time.Duration {
	if config.SuccessDisplaySecs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(config.SuccessDisplaySecs) * time.Second
}
