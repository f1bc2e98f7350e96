// Package api serves the barnframe engines over HTTP.
//
// # Endpoints
//
//	GET  /healthz           build info and status
//	POST /v1/analyze        beam plan and space snapshot together
//	POST /v1/beams          beam plan for a design
//	POST /v1/snapshot       space snapshot for a design
//	POST /v1/validate       {"design": ..., "change": {"width": 20}}
//	POST /v1/protection     per-wall protection summary
//	POST /v1/access-graph   access-path graph; ?format=dot|svg|json&detailed=true
//
// Design bodies are JSON documents in the same shape as design files, or TOML
// and YAML when Content-Type says so.
// Every error is returned as {"code": ..., "message": ..., "request_id": ...}
// with a status derived from the error code.
//
// # Usage
//
//	srv := api.NewServer(runner, cfg.Server, logger)
//	if err := srv.ListenAndServe(ctx); err != nil {
//	    return err
//	}
package api
