package config

import "flag"

func ParseFlags(base Config) Config {
	apiBaseURL := flag.String("api-base-url", base.APIBaseURL, "Base URL of the ETL backend")
	timeout := flag.Int("timeout", base.TimeoutSecs, "Request timeout in seconds")
	theme := flag.String("theme", base.Theme, "Color theme (dark or light)")
	demo := flag.Bool("demo", base.Demo, "Serve a local stub backend and point the dashboard at it")
	demoDir := flag.String("demo-dir", base.DemoDir, "Directory the stub backend serves datasets from")
	flag.Parse()

	base.APIBaseURL = *apiBaseURL
	base.TimeoutSecs = *timeout
	base.Theme = *theme
	base.Demo = *demo
	base.DemoDir = *demoDir
	return base
}
