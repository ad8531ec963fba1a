package pcs

import (
	"fmt"
	"strings"
)

// stonithLevelCommand renders a stonith level verb with the level, node
// and device positional arguments. When cibFile is set the command
// operates on the offline configuration snapshot instead of the live
// cluster.
func stonithLevelCommand(verb string, level int, nodeName, stonithDevice, cibFile string) string {
	args := []string{"pcs"}
	if cibFile != "" {
		args = append(args, "-f", cibFile)
	}
	args = append(args, "stonith", "level", verb, fmt.Sprint(level), nodeName, stonithDevice)
	return strings.Join(args, " ")
}

// StonithLevelAddCommand renders the fencing level creation command.
func StonithLevelAddCommand(level int, nodeName, stonithDevice, cibFile string) string {
	return stonithLevelCommand("add", level, nodeName, stonithDevice, cibFile)
}

// StonithLevelRemoveCommand renders the fencing level removal command.
// Only the exactly matching record is removed, same behaviour as pcs.
func StonithLevelRemoveCommand(level int, nodeName, stonithDevice, cibFile string) string {
	return stonithLevelCommand("remove", level, nodeName, stonithDevice, cibFile)
}
