// Package dispatch delivers one prepared message to a list of recipients.
//
// The Dispatcher splits the list into fixed-size batches. Recipients in a
// batch are delivered concurrently and the batch ends when all of them have
// an outcome. Batches never overlap, and a fixed cooldown separates
// consecutive batches so the provider's sending quota is respected. There is
// no cooldown after the last batch.
//
// Every recipient gets at most MaxAttempts sends. After failed attempt k the
// dispatcher waits k*Backoff before trying again, so with the defaults a
// recipient that keeps failing is tried at t, t+1s and t+3s.
//
// Failures never abort the run. Each recipient ends up in the report exactly
// once, either as a success or as a failure with the last error message:
//
//	d, err := dispatch.New(transport, email,
//		dispatch.WithBatchSize(50),
//		dispatch.WithCooldown(time.Minute),
//		dispatch.WithObserver(dispatch.NewLogObserver(log)),
//	)
//	if err != nil {
//		return err
//	}
//	rep, err := d.Run(ctx, list)
//
// Run returns an error only when ctx is cancelled; recipients that were not
// attempted by then are recorded as failures carrying the context error.
package dispatch
