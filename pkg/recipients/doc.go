// Package recipients loads recipient lists for a bulk send and splits them
// into delivery batches.
//
// A recipient file is plain UTF-8 text with one address per line. Lines are
// trimmed and every line that does not contain an "@" is skipped silently,
// which drops blank lines, comments and obvious garbage. No further syntax
// checks are made: a malformed address is passed through and rejected later
// by the mail transport.
//
// # Usage
//
//	list, err := recipients.Load("email_list.txt")
//	if err != nil {
//		return err // errors.Is(err, recipients.ErrReadFailed)
//	}
//
//	for _, batch := range recipients.Batches(list, 50) {
//		// send batch
//	}
//
// Order is preserved and duplicates are kept.
package recipients
