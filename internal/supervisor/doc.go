// Rankpulse - SEO and Marketing Analytics Aggregator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rankpulse

/*
Package supervisor provides process supervision for Rankpulse using suture v4.

Long-running components are organized into a two-layer tree:

	RootSupervisor ("rankpulse")
	├── DataSupervisor ("data-layer")
	│   └── CheckpointService (DuckDB only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

A failing checkpoint loop is restarted with backoff without touching the
HTTP server, and the reverse.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCheckpointService(db, 5*time.Minute))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Restart Policy

Return values of Serve decide what the supervisor does:

	nil        service finished, not restarted
	error      service crashed, restarted after backoff
	ctx.Err()  shutdown requested

Events (start, failure, backoff) are logged through sutureslog into the
zerolog-backed slog handler from internal/logging.

# See Also

  - internal/supervisor/services: suture.Service wrappers
  - github.com/thejerf/suture/v4
*/
package supervisor
