/*
Package config manages configuration parsing and validation for restage.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+-----------+
	      |                       |           |
	+-----+-----+           +----+----+  +----+----+
	|   YAML    |           |   HCL   |  |  JSON   |
	| Parser    |           | Parser  |  | Parser  |
	+-----------+           +---------+  +---------+

🎯 Purpose:
- Loads the session settings (base directory, scratch and manifest names)
- Normalizes the input/output extensions
- Carries the ignore globs used when locating files
- Tunes the move operation

📝 Example (.restage.yaml):

	base_dir: /Users/me/Desktop
	in_ext: indd
	out_ext: idml
	ignore:
	  - ".git/**"
	  - "archive/**"
	move:
	  prefer_rename: true

Missing fields fall back to the defaults in this package; see Config.Validate.
*/
package config
