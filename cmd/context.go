// Copyright 2026 The fgfleet Authors
// Licensed under the BSD 3-Clause License.
// SPDX-License-Identifier: BSD-3-Clause

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

var onlyOneSignalHandler = make(chan struct{}) //nolint:gochecknoglobals

// SignalHandledContext returns a context that is canceled on SIGINT or SIGTERM.
// The device being processed is finished, later ones see the canceled context.
func SignalHandledContext() (context.Context, context.CancelFunc) {
	// panics when called twice, this way there can only be one signal handled context
	close(onlyOneSignalHandler)

	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 2) //nolint:mnd

	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigs
		log.Errorf("received signal %q, canceling context...", sig)

		cancel()

		<-sigs
		os.Exit(1) // second signal. Exit directly.
	}()

	return ctx, cancel
}
