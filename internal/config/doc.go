// Package config defines the deployment descriptor for a ZNC bouncer VM
// and its validation rules.
//
// A descriptor is assembled once per invocation from CLI flags, optionally
// pre-loaded from a YAML file, and drives every create/delete call issued
// against the Compute Engine API. No descriptor state is persisted locally;
// the cloud project is the source of truth for what exists.
package config
