// Package schema loads what record validation is checked against: the
// validation [Profile], the SHACL shapes and the class hierarchy. Defaults
// are embedded; each can be replaced by a file named in the configuration.
//
// The set of supported record types is every class below the profile's
// marker type, minus the categorizing classes of the excluded namespace.
package schema
