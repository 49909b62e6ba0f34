package preflight

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"judder/internal/config"
	"judder/internal/deps"
	"judder/internal/rateset"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckRateStore opens the rate store and reads it back.
func CheckRateStore(ctx context.Context, cfg *config.Config) Result {
	const name = "Rate store"

	store, err := rateset.Open(ctx, cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.RateStorePath(), err)}
	}
	defer store.Close()

	rates, err := store.List(ctx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", store.Path(), err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d rates)", store.Path(), len(rates))}
}

// CheckFFprobe reports whether the configured ffprobe binary resolves.
// ffprobe is only needed by `judder probe`, so a miss is optional.
func CheckFFprobe(ctx context.Context, cfg *config.Config) Result {
	status := deps.CheckBinaries(ctx, []deps.Requirement{{
		Name:        "FFprobe",
		Command:     cfg.FFprobeBinary(),
		Description: "Required for judder probe",
		Optional:    true,
	}})[0]

	if !status.Available {
		return Result{Name: status.Name, Optional: true, Detail: status.Detail}
	}
	detail := status.Path
	if status.Version != "" {
		detail = fmt.Sprintf("%s (%s)", status.Path, status.Version)
	}
	return Result{Name: status.Name, Optional: true, Passed: true, Detail: detail}
}
