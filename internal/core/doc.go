// Package core holds the low-level abstractions shared by viceversion
// packages: filesystem access, external command execution and the
// constants that bound them. Production implementations talk to the OS;
// the mock implementations keep tests hermetic.
package core
