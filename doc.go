// Package tvault is the Composition Root for the tvault client.
//
// It connects the core business logic (Domain Layer) with the storage adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// A TrueVault vault is treated as a remote document database. Payloads are
// arbitrary JSON, encoded to base64 on the wire; sessions are documents found by
// their "sid" field. The core only knows about core.Repository and its optional
// capabilities, so tests and offline tools can swap in the memory adapter.
//
// Features:
//
//   - **Batched Reads**: bulk reads are split into concurrent requests of at most 100 ids.
//   - **Upserts**: one Save call inserts (no id) or updates (id) a document.
//   - **Session Store**: `NewSessionStore` layers sid-based sessions on the same documents.
//   - **Typed Retrieval**: Generic wrapper (`NewTypedRepository[T]`) for type-safe document access.
//   - **Config Files**: YAML config discovered upwards from the working directory, with env overrides.
//
// Usage:
//
//	cfg, err := tvault.LoadConfig("tvault.yaml")
//	svc, err := tvault.New(cfg, tvault.WithLogger(logger))
//
//	id, err := svc.SaveDocument(ctx, map[string]any{"name": "Ada"}, "")
//	doc, err := svc.GetDocument(ctx, id)
package tvault
