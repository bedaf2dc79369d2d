// Package storage provides S3-compatible object storage for run artifacts.
//
// mailblast uses it for two things: uploading the JSON run report next to
// the local copy, and fetching an attachment referenced as s3://bucket/key.
//
//	store, err := storage.New(storage.Config{
//		Bucket:    "mail-runs",
//		AccessKey: os.Getenv("S3_ACCESS_KEY"),
//		SecretKey: os.Getenv("S3_SECRET_KEY"),
//		Prefix:    "mailblast",
//	})
//	if err != nil {
//		return err
//	}
//
//	info, err := store.Put(ctx, "reports/run.json", bytes.NewReader(data), int64(len(data)),
//		storage.WithContentType("application/json"),
//	)
//
// Keys are relative to Config.Prefix. Errors are normalized to the package
// sentinels (ErrNotFound, ErrAccessDenied, ErrUploadFailed); match them with
// errors.Is.
package storage
