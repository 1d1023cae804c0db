/*
Package session owns the one piece of mutable state in the system: the
current-agent pointer of each live conversation.

A State references its customer's graph by id and records the current agent
plus the handoff history. The Manager serializes concurrent access per
session with reference-counted local locks, optionally combined with a
distributed locker for multi-replica deployments, and persists state through
a pluggable Store.
*/
package session
