// Package header provides low-level and high-level tooling for building email
// message headers. If you need low-level access, you want to deal with methods
// that work with field.Field objects. However, it is generally expected that
// devs will prefer the high-level methods which keep the header strictly
// correct on output.
//
// Fields are kept in insertion order and a name may be repeated. The Add
// method always appends, while Set replaces every field of the same name.
package header
