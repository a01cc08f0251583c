// Package cmd implements the jitcalc subcommands.
//
// Commands read their engine flags, standard streams and kong context from
// the [context.Context] passed to Run; see [WithEngine], [WithStreams] and
// [WithContext].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
