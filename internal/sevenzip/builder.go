package sevenzip

import "strconv"

// AddArgs builds the arguments that compress inputs into a 7z-format
// archive at level (0 = store, 9 = ultra). The format is forced so the
// archive name's extension does not matter. Progress output is disabled
// and every prompt is answered yes.
//
// Every builder ends switch parsing before the paths: -spd turns off
// wildcard matching so '*' and '?' in names are literal, and "--" keeps a
// name starting with '-' or '@' from being read as a switch or list file.
func AddArgs(archive string, level int, inputs ...string) []string {
	args := make([]string, 0, 8+len(inputs))
	args = append(args, "a", "-t7z", "-mx="+strconv.Itoa(level), "-bd", "-y")
	args = append(args, "-spd", "--", archive)
	return append(args, inputs...)
}

// IntegrityArgs builds the arguments for an integrity test of archive.
func IntegrityArgs(archive string) []string {
	return []string{"t", "-bd", "-spd", "--", archive}
}

// ListArgs builds the arguments for a technical (-slt) listing of archive.
func ListArgs(archive string) []string {
	return []string{"l", "-slt", "-spd", "--", archive}
}
