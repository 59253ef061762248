// Package errors provides the coded error type used across the deck pipeline.
//
// Every failure the pipeline reports falls into one of a few buckets, and the
// bucket decides what the caller does next:
//
//   - NotFound: a required input file is missing (spell cache, deck file).
//   - Unauthenticated: the image service credential is not set.
//   - InvalidArgument: fatal user input, e.g. "--level 3,x". The whole call aborts.
//   - MalformedRecord: one bad spell or card. Logged, dropped, batch continues.
//   - Unavailable: the image or SRD service failed. Per-card skip in the art engine.
//   - EmptyResult: nothing survived validation or filtering. No output is written.
//
// Creating errors:
//
//	err := errors.NotFoundf("spell data not found at %s", path)
//	err := errors.InvalidArgumentf("invalid level %q", token)
//
// Adding metadata:
//
//	err := errors.MalformedRecord("missing required fields").
//	    WithMeta("spell", name).
//	    WithMeta("missing", missing)
//
// Wrapping errors keeps the original code unless a new one is given:
//
//	if err := store.Save(path, deck); err != nil {
//	    return errors.Wrap(err, "failed to write deck")
//	}
//
// The CLI turns a code into an exit status with Code.ExitCode.
//
// Config structs validate through the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("DeckPath", input.DeckPath, vb)
//	errors.ValidateMin("N", input.N, 1, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
