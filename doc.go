// Package mailblast delivers one message to a large recipient list through
// a rate-limited mail transport.
//
// The root package re-exports the dispatch engine for use as a library.
// The mailblast command in cmd/mailblast wires it to configuration, SMTP or
// Resend transports and S3 storage.
//
// # Quick Start
//
//	list, err := mailblast.LoadRecipients("email_list.txt")
//	if err != nil {
//	    return err
//	}
//
//	d, err := mailblast.New(transport, email,
//	    mailblast.WithBatchSize(50),
//	    mailblast.WithCooldown(time.Minute),
//	)
//	if err != nil {
//	    return err
//	}
//	defer transport.Close()
//
//	rep, err := d.Run(ctx, list)
//	if err != nil {
//	    // ctx was cancelled; rep still accounts for every recipient
//	}
//	_ = mailblast.SaveReport(ctx, rep, mailblast.FileSink{Path: "email_sending_report.json"})
//
// # Delivery
//
// Recipients are split into batches (50 by default). A batch is delivered
// concurrently and must finish before the next one starts; a cooldown (60s
// by default) separates batches. Each recipient is tried up to three times
// with a linear backoff of one second per failed attempt.
//
// # Transports
//
// Any [Transport] works. The pkg/mailer/smtp package sends through an SMTP
// relay (Gmail with XOAUTH2 by default), pkg/mailer/resend through the
// Resend API, and [NewLogTransport] only logs, which is handy for dry runs.
//
// # Reports
//
// [Dispatcher.Run] returns a [Report] whose success and failure counts
// always add up to the number of recipients. [SaveReport] writes it as JSON
// to one or more sinks.
package mailblast
