package stub

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"

	"hydroboard/internal/domain"
)

// Server is a local stand-in for the water-resource ETL backend. It serves
// the same endpoints over a real directory: dataset/ for raw input and
// output/ for processed results under the configured base directory. Used
// by demo mode and the test suite; it is not the production service.
type Server struct {
	baseDir string
	echo    *echo.Echo

	mu            sync.Mutex
	lastProcessed *folderInfo
}

func NewServer(baseDir string) *Server {
	server := &Server{
		baseDir: baseDir,
		echo:    echo.New(),
	}
	server.echo.HideBanner = true
	server.echo.HidePort = true
	server.routes()
	return server
}

func (server *Server) routes() {
	server.echo.GET("/dataset/info", server.handleDatasetInfo)
	server.echo.GET("/dataset/processed/info", server.handleProcessedInfo)
	server.echo.GET("/dataset/changes", server.handleChanges)
	server.echo.POST("/sensors/update-data", server.handleUpdateData)
}

// Handler exposes the stub as an http.Handler for httptest servers.
func (server *Server) Handler() http.Handler {
	return server.echo
}

func (server *Server) Start(address string) error {
	return server.echo.Start(address)
}

// Serve runs the stub on an already bound listener, used by demo mode to
// pick a free loopback port.
func (server *Server) Serve(listener net.Listener) error {
	server.echo.Listener = listener
	return server.echo.Start("")
}

func (server *Server) handleDatasetInfo(c echo.Context) error {
	info, err := server.folderInfo("dataset")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, info.snapshot())
}

func (server *Server) handleProcessedInfo(c echo.Context) error {
	info, err := server.folderInfo("output")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, info.snapshot())
}

func (server *Server) handleChanges(c echo.Context) error {
	current, err := server.folderInfo("output")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	changes := server.diffProcessed(current)
	return c.JSON(http.StatusOK, changes)
}

// handleUpdateData simulates the ETL run: each CSV in dataset/ is merged
// into output/sensor_data/ under the *_updated name the real pipeline uses.
// The response is sent only when all files are written, matching the
// synchronous contract of the original endpoint.
func (server *Server) handleUpdateData(c echo.Context) error {
	before, err := server.folderInfo("output")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	server.mu.Lock()
	server.lastProcessed = &before
	server.mu.Unlock()

	datasetDir := filepath.Join(server.baseDir, "dataset")
	outputDir := filepath.Join(server.baseDir, "output", "sensor_data")
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	entries, err := os.ReadDir(datasetDir)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		source := filepath.Join(datasetDir, name)
		target := filepath.Join(outputDir, strings.TrimSuffix(name, ".csv")+"_updated.csv")
		if err := copyFile(source, target); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Data update and merge completed successfully"})
}

type folderInfo struct {
	totalBytes int64
	files      []string
	rowCounts  map[string]int
}

func (info folderInfo) snapshot() domain.DatasetSnapshot {
	return domain.DatasetSnapshot{
		TotalSize: formatMB(info.totalBytes),
		FileCount: len(info.files),
		Files:     info.files,
		RowCounts: info.rowCounts,
	}
}

// folderInfo walks one directory the way the backend describes datasets:
// CSV files only, sorted relative paths, row counts for data files but not
// metadata.
func (server *Server) folderInfo(folder string) (folderInfo, error) {
	root := filepath.Join(server.baseDir, folder)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return folderInfo{}, err
	}
	info := folderInfo{files: []string{}, rowCounts: map[string]int{}}
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			return nil
		}
		stat, err := entry.Info()
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		info.totalBytes += stat.Size()
		info.files = append(info.files, relPath)
		if !strings.Contains(relPath, "metadata") {
			rows, err := countDataRows(path)
			if err != nil {
				rows = 0
			}
			info.rowCounts[relPath] = rows
		}
		return nil
	})
	if err != nil {
		return folderInfo{}, err
	}
	sort.Strings(info.files)
	return info, nil
}

// diffProcessed compares the current output directory against the state
// captured when the last update started.
func (server *Server) diffProcessed(current folderInfo) domain.DatasetChangeSet {
	server.mu.Lock()
	defer server.mu.Unlock()
	snapshot := current.snapshot()
	if server.lastProcessed == nil {
		return domain.DatasetChangeSet{
			AddedFiles:    []string{},
			ModifiedFiles: []string{},
			CurrentInfo:   &snapshot,
		}
	}
	changes := domain.ComputeChanges(server.lastProcessed.snapshot(), snapshot)
	changes.SizeChange = formatSizeDelta(current.totalBytes - server.lastProcessed.totalBytes)
	return changes
}

func countDataRows(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	rows := 0
	for scanner.Scan() {
		rows++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	if rows > 0 {
		rows-- // header line
	}
	return rows, nil
}

func copyFile(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func formatMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
}

func formatSizeDelta(delta int64) string {
	sign := "+"
	if delta < 0 {
		sign = "-"
		delta = -delta
	}
	switch {
	case delta >= 1024*1024:
		return fmt.Sprintf("%s%.2f MB", sign, float64(delta)/(1024*1024))
	case delta >= 1024:
		return fmt.Sprintf("%s%.1f KB", sign, float64(delta)/1024)
	default:
		return fmt.Sprintf("%s%d B", sign, delta)
	}
}
