//go:build mage

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

var (
	CmdDir   = "cmd/server"
	BuildDir = "bin"
	Binary   = "sppages"
)

func sh(name string, args ...string) error {
	return shEnv(nil, name, args...)
}

// shEnv runs a command with the current environment plus env.
func shEnv(env map[string]string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Env = os.Environ()
	for k, v := range env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}
	cmd.Stdout, cmd.Stderr, cmd.Stdin = os.Stdout, os.Stderr, os.Stdin
	return cmd.Run()
}

func out(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}

func requireTools(bins ...string) error {
	for _, b := range bins {
		if _, err := exec.LookPath(b); err != nil {
			return fmt.Errorf("%s not found; run 'mage deps'", b)
		}
	}
	return nil
}

func runSteps(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func binPath() string {
	name := Binary
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(BuildDir, name)
}

// raceEnabled is false when NO_RACE=1.
func raceEnabled() bool {
	return os.Getenv("NO_RACE") != "1"
}

func goTest(extra ...string) error {
	args := []string{"test"}
	env := map[string]string{}
	if raceEnabled() {
		args = append(args, "-race")
		env["CGO_ENABLED"] = "1"
	}
	return shEnv(env, "go", append(args, extra...)...)
}

// Bootstrap: download modules and install tooling
func Bootstrap() error {
	return runSteps(ModDownload, Deps)
}

// ModDownload: prefetch all module dependencies into the module cache.
func ModDownload() error {
	return sh("go", "mod", "download", "all")
}

// Deps: install CLI tooling
func Deps() error {
	tools := []string{
		"golang.org/x/tools/cmd/goimports@latest",
		"honnef.co/go/tools/cmd/staticcheck@latest",
		"github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		"github.com/go-delve/delve/cmd/dlv@latest",
		"golang.org/x/vuln/cmd/govulncheck@latest",
	}
	for _, tool := range tools {
		if err := sh("go", "install", tool); err != nil {
			return err
		}
	}
	return nil
}

// Build: build the server into ./bin
func Build() error {
	if err := os.MkdirAll(BuildDir, 0o755); err != nil {
		return err
	}
	return sh("go", "build", "-trimpath", "-buildvcs=false", "-ldflags", "-s -w", "-o", binPath(), "./"+CmdDir)
}

// Run: run the server from source (reads .env when present)
func Run() error {
	return sh("go", "run", "./"+CmdDir)
}

// Debug: run with delve (headless)
func Debug() error {
	if err := requireTools("dlv"); err != nil {
		return err
	}
	return sh("dlv", "debug", "./"+CmdDir, "--headless", "--listen=:2345", "--api-version=2", "--accept-multiclient")
}

// Health: query /health of a running server at HTTP_ADDR (default :8080)
func Health() error {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get("http://" + addr + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	fmt.Println(string(body))
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health returned %s", resp.Status)
	}
	return nil
}

// Vuln: check for known vulnerabilities
func Vuln() error {
	if err := requireTools("govulncheck"); err != nil {
		return err
	}
	return sh("govulncheck", "./...")
}

// Test: run unit tests, with the race detector unless NO_RACE=1
func Test() error {
	return goTest("./...")
}

// TestPkg: run the tests of a single package, e.g. PKG=./domain/clientside
func TestPkg() error {
	pkg := os.Getenv("PKG")
	if pkg == "" {
		return errors.New("set PKG, e.g. PKG=./domain/clientside")
	}
	return goTest("-v", pkg)
}

// Cover: coverage report in coverage.html
func Cover() error {
	if err := goTest("-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	fmt.Println("Coverage HTML -> coverage.html")
	return sh("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Lint: vet + staticcheck + golangci-lint
func Lint() error {
	if err := requireTools("staticcheck", "golangci-lint"); err != nil {
		return err
	}
	return runSteps(
		func() error { return sh("go", "vet", "./...") },
		func() error { return sh("staticcheck", "./...") },
		func() error { return sh("golangci-lint", "run") },
	)
}

// Fmt: go fmt + goimports -w
func Fmt() error {
	if err := sh("go", "fmt", "./..."); err != nil {
		return err
	}
	return sh("goimports", "-w", ".")
}

// FmtCheck: fail if formatting or imports need fixing
func FmtCheck() error {
	var msgs []string
	for _, tool := range []string{"gofmt", "goimports"} {
		if files, _ := out(tool, "-l", "."); files != "" {
			msgs = append(msgs, "Needs "+tool+":\n"+files)
		}
	}
	if len(msgs) > 0 {
		return errors.New(strings.Join(msgs, "\n\n"))
	}
	return nil
}

// TidyCheck: ensure go.mod/go.sum are tidy
func TidyCheck() error {
	before, _ := out("git", "status", "--porcelain", "--", "go.mod", "go.sum")
	if err := sh("go", "mod", "tidy"); err != nil {
		return err
	}
	after, _ := out("git", "status", "--porcelain", "--", "go.mod", "go.sum")
	if before != after {
		diff, _ := out("git", "--no-pager", "diff", "--", "go.mod", "go.sum")
		return fmt.Errorf("go.mod/sum changed; run 'go mod tidy' and commit.\n%s", diff)
	}
	return nil
}

// Clean: remove build artifacts, coverage output and local journal databases
func Clean() error {
	_ = os.RemoveAll(BuildDir)
	patterns := []string{"coverage.out", "coverage.html", "*.db", "*.db-wal", "*.db-shm"}
	for _, pattern := range patterns {
		matches, _ := filepath.Glob(pattern)
		for _, m := range matches {
			_ = os.Remove(m)
		}
	}
	return nil
}

// Verify: formatting, tidiness, lint, vulnerabilities, build and tests
func Verify() error {
	if err := runSteps(FmtCheck, TidyCheck, Lint, Vuln, Build, Test); err != nil {
		return err
	}
	fmt.Println("Build + checks passed")
	return nil
}
