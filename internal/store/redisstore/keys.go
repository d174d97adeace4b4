package redisstore

import "fmt"

// Redis key pattern helpers
//
// Keys are namespaced so several rule libraries can share one Redis server.
//
// Key pattern: cellrules:{namespace}:automaton:{id}

// AutomatonKey returns the hash key holding one automaton.
// Pattern: cellrules:{namespace}:automaton:{id}
func AutomatonKey(namespace string, id int64) string {
	return fmt.Sprintf("cellrules:%s:automaton:%d", namespace, id)
}

// NextIDKey returns the counter key used to assign automaton ids.
// Pattern: cellrules:{namespace}:automata:next_id
func NextIDKey(namespace string) string {
	return fmt.Sprintf("cellrules:%s:automata:next_id", namespace)
}

// ByUseKey returns the ZSET of automaton ids scored by last use (unix millis).
// Pattern: cellrules:{namespace}:automata:by_use
func ByUseKey(namespace string) string {
	return fmt.Sprintf("cellrules:%s:automata:by_use", namespace)
}
