// Package config describes a vocoder job and loads it from YAML. Fields a
// file omits keep the values from Default, so command-line flags can layer
// on top.
package config
