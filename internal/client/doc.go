// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the task tracker.
//
// Each invocation runs one command (status, signup, login, me, tasks, add,
// done, rm, ...) against the HTTP API through an [adapter.TaskAPIClient]
// and prints a short human readable result.
package client
