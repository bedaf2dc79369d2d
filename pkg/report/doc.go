// Package report accumulates delivery outcomes of a dispatch run and writes
// the final summary to durable sinks.
//
// A Reporter is fed by the dispatcher one batch at a time and is never
// shared between goroutines. Finish produces an immutable Report whose
// SuccessCount and FailureCount always add up to TotalRecipients.
//
// # Output
//
// Reports serialize to indented JSON:
//
//	{
//	  "totalEmails": 2,
//	  "successfulSent": 1,
//	  "failedSent": 1,
//	  "timeElapsed": 0.05,
//	  "startedAt": "2026-10-19T10:00:00Z",
//	  "finishedAt": "2026-10-19T10:00:03Z",
//	  "failedEmails": [{"email": "c@x.com", "error": "550 mailbox unavailable"}]
//	}
//
// Save writes the document to every sink (a local file, an S3 object) and
// returns the joined write errors; the Report itself stays usable either way.
package report
