// Copyright (C) 2025 Kevnet IO (oss@kevnet.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kevnet-io/rulate/cmd/rulate/config"
	"github.com/kevnet-io/rulate/pkg/ux"
	"github.com/kevnet-io/rulate/services/compat/matrix"
)

// runWatch re-evaluates on every change to the input files. Directories
// are watched rather than the files themselves because editors replace
// files on save, which drops inode-level watches.
func runWatch(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		ux.Error("failed to start file watcher: " + err.Error())
		os.Exit(1)
	}
	defer watcher.Close()

	watched := map[string]bool{
		filepath.Clean(schemaPath):  true,
		filepath.Clean(catalogPath): true,
		filepath.Clean(rulesPath):   true,
	}
	dirs := map[string]bool{}
	for path := range watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			ux.Error("failed to watch " + dir + ": " + err.Error())
			os.Exit(1)
		}
	}

	debounce := time.Duration(config.Global.Watch.DebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = 400 * time.Millisecond
	}

	ux.Info("watching for changes (ctrl-c to stop)")
	runOnce(ctx)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			ux.Muted("watch stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("input changed", "file", event.Name, "op", event.Op.String())
			// Restart the quiet period on every event in the burst
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			runOnce(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// runOnce performs a single validate-and-evaluate pass, reporting but
// not exiting on failure so the watch loop survives bad intermediate
// states of the files.
func runOnce(ctx context.Context) {
	in, err := loadInputs(schemaPath, catalogPath, rulesPath)
	if err != nil {
		ux.Error(err.Error())
		return
	}
	if !validateInputs(in) {
		ux.Warning("inputs invalid, waiting for next change")
		return
	}

	result, err := evaluateMatrix(ctx, in)
	if err != nil {
		if !errors.Is(err, matrix.ErrEvaluationCancelled) {
			ux.Error(err.Error())
		}
		return
	}
	printMatrix(result)
}
