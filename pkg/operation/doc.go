/*
Package operation implements the restage round trip and the tree mover.

	+----------+   stage    +-----------+  convert   +-----------+
	| Original | ---------> |  scratch  | ---------> |  scratch  |
	| a/x.indd |  gather    | 0.indd    | (external) | 0.idml    |
	+----------+            +-----------+            +-----------+
	      ^                                                |
	      |                   restore                      |
	      +------------------------------------------------+
	                      a/x.idml

🎯 Purpose:
- gather: write the manifest, then copy each selected file to scratch/{i}.{in_ext}
- restore: copy scratch/{i}.{out_ext} back next to manifest entry i, never
  replacing an existing file, and drop the scratch artifacts it reconciled
- clean: drop staged inputs whose conversion never appeared
- move: mirror matching files from one root into another
- Inspect: report where each manifest entry is in the round trip

🔄 Resumability:
Every operation checks the filesystem before acting on an entry, so running it
again after a crash or cancellation only does the work that is left. Copies go
through a temporary file and a rename, so a destination is either absent or
complete.

🤝 Interfaces:
- Operation: Name and Execute(ctx, status.Reporter) (*Result, error)
- OperationRunner: runs an Operation inline or with an async progress consumer

🔍 Example:

	op := operation.NewRestoreOperation(operation.Options{Session: sess})
	res, err := operation.NewRunner(logger, true, reporter).Run(ctx, op)
*/
package operation
