// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package services provides suture.Service wrappers for Rankpulse components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve(ctx) error:

  - HTTPServerService: ListenAndServe/Shutdown of the API server, with a
    bounded graceful shutdown
  - CheckpointService: periodic DuckDB checkpoint, flushing the WAL into the
    database file

Serve returns ctx.Err() on requested shutdown and a wrapped error on
failure, which makes the supervisor restart the service after backoff.
*/
package services
