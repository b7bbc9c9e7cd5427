package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Check  bool
	Notify bool
	Edit   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Check = boolEnv("VTREE_DEBUG_CHECK")
	d.Notify = boolEnv("VTREE_DEBUG_NOTIFY")
	d.Edit = boolEnv("VTREE_DEBUG_EDIT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Check reports whether models verify the shadow tree after every change.
func Check() bool {
	return d.Check
}

// Notify reports whether model change notifications are traced.
func Notify() bool {
	return d.Notify
}

// Edit reports whether edit script operations are traced.
func Edit() bool {
	return d.Edit
}

// SetCheck sets the Check switch and returns a func restoring the previous
// setting, for tests.
func SetCheck(b bool) func() {
	old := d.Check
	d.Check = b
	return func() { d.Check = old }
}
