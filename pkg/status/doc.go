/*
Package status carries progress out of the long running restage operations.

	+-------------+        +-----------+        +------------------+
	|  Operation  | -----> |  Tracker  | -----> |     Reporter     |
	| (per entry) |  Step  | (fraction)| Report | (log, chan, test)|
	+-------------+        +-----------+        +------------------+

🎯 Purpose:
- Turns "entry i of n finished" into a Progress event with Fraction (i+1)/n
- Keeps the operations free of any knowledge of who is listening
- Formats outcomes for logs and terminals

🤝 Interfaces:
- Reporter: the sink; ReporterFunc, Discard, Tee, ChannelReporter, Recorder, LogReporter
- FileFormatter: formats outcomes, progress and errors

Events of a run arrive in entry order, so fractions never decrease and the
last event of a completed run has Fraction 1.0.
*/
package status
