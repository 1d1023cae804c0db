/*
Package ports defines the driven ports (interfaces) that decouple the
agent-graph core from its external collaborators.

  - GraphStore: persistence of validated customer graphs (memory, Redis, files).
  - DistributedLocker: cross-replica coordination for session access.

The package also ships a reusable contract test suite so every GraphStore
implementation is held to the same behavior.
*/
package ports
