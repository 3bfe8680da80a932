// Package truevault implements the core ports on top of the TrueVault REST API.
//
// Documents are arbitrary JSON payloads stored base64-encoded inside a vault.
// The client reads them one at a time or in batches of at most MaxBatchSize ids,
// writes them with form-encoded POST/PUT requests, and layers a session store on
// the same document model by searching for the "sid" field of session payloads.
//
//	client, err := truevault.New(truevault.Config{
//		APIKey:           os.Getenv("TVAULT_API_KEY"),
//		VaultID:          "00000000-0000-0000-0000-000000000000",
//		DocumentSchemaID: "11111111-1111-1111-1111-111111111111",
//		SessionSchemaID:  "22222222-2222-2222-2222-222222222222",
//	}, truevault.WithLogger(logger))
//
//	id, err := client.SaveDocument(ctx, map[string]any{"name": "Ada"}, "")
//	doc, err := client.GetDocumentByID(ctx, id)
//
// Nothing is cached and nothing is retried: every call is one (or, for batched
// reads, a small concurrent fan-out of) HTTP request(s) and failures are returned
// to the caller unchanged.
package truevault
