// Package connector groups dataglide's connector packages.
//
//   - jdbc: declarative database source and sink connectors built from
//     immutable read/write descriptors. Sources read, sinks write; the
//     wrong-mode operation on either fails loudly instead of no-opping.
//
//   - registry: test doubles registered by connector identity. A fake
//     source or sink registered under a connector's fingerprint is
//     substituted for real execution when the pipeline runs under test.
package connector
