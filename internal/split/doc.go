// Package split orchestrates one splitting job end to end.
//
// The Runner loads the job file, parses the tracklist into an album,
// splits the source audio into per-track files, re-opens each output to
// write its tags, and optionally writes a playlist. Stages run strictly
// in sequence with no retries; the first error stops the run and files
// already written are left in place.
//
//	runner := split.NewRunner(settings, func(e split.ProgressEvent) {
//		fmt.Println(e.Message)
//	})
//	if err := runner.Initialize("split_config.txt"); err != nil { ... }
//	if err := runner.Run(); err != nil { ... }
package split
