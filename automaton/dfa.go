package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// pendingSubset is one entry of ToDFA's subset-construction work
// queue: an NFA state set plus its already-computed setKey, so the
// queue doesn't recompute it on every pop.
type pendingSubset struct {
	set map[int]bool
	key string
}

// ToDFA determinizes an ε-NFA via the classical subset construction:
// each DFA state is a set of NFA states, closed under ε-transitions.
func ToDFA(nfa *NFA) *NFA {
	alphabet := nfa.Alphabet()
	dfa := NewNFA()
	startSet := nfa.epsilonClosure(map[int]bool{})
	for s := range nfa.Start {
		startSet = unionIntSets(startSet, nfa.epsilonClosure(map[int]bool{s: true}))
	}
	key := setKey(startSet)
	ids := map[string]int{}
	startID := dfa.AddState()
	ids[key] = startID
	dfa.SetStart(startID)
	if setIntersectsFinal(startSet, nfa.Final) {
		dfa.SetFinal(startID)
	}
	queue := linkedlistqueue.New()
	queue.Enqueue(pendingSubset{startSet, key})
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		entry := v.(pendingSubset)
		cur, curKey := entry.set, entry.key
		curID := ids[curKey]
		for _, sym := range alphabet {
			next := map[int]bool{}
			for s := range cur {
				for _, e := range nfa.transitionsFrom(s) {
					if e.Label == sym {
						next[e.To.(int)] = true
					}
				}
			}
			if len(next) == 0 {
				continue
			}
			next = nfa.epsilonClosure(next)
			nk := setKey(next)
			id, seen := ids[nk]
			if !seen {
				id = dfa.AddState()
				ids[nk] = id
				if setIntersectsFinal(next, nfa.Final) {
					dfa.SetFinal(id)
				}
				queue.Enqueue(pendingSubset{next, nk})
			}
			dfa.AddTrans(curID, sym, id)
		}
	}
	return dfa
}

func unionIntSets(a, b map[int]bool) map[int]bool {
	out := map[int]bool{}
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func setIntersectsFinal(set map[int]bool, final map[int]bool) bool {
	for s := range set {
		if final[s] {
			return true
		}
	}
	return false
}

func setKey(set map[int]bool) string {
	ids := make([]int, 0, len(set))
	for s := range set {
		ids = append(ids, s)
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// MinimizeDFA computes the minimal DFA equivalent to dfa via coarsest
// partition refinement (Hopcroft-equivalent result, simple
// implementation): states start partitioned {final, non-final} and
// are repeatedly split until every pair of states in the same block
// transitions, on every alphabet symbol, into the same block.
// spec.md §4.2 and §8 invariant 1 require exactly this: the minimum
// number of states, with isomorphic results for equivalent regexes.
func MinimizeDFA(dfa *NFA) *NFA {
	alphabet := dfa.Alphabet()
	n := len(dfa.States)
	if n == 0 {
		return dfa
	}
	trans := make([]map[string]int, n)
	for i := range trans {
		trans[i] = map[string]int{}
	}
	for _, e := range dfa.Trans {
		trans[e.From.(int)][e.Label] = e.To.(int)
	}
	block := make([]int, n) // state -> block id
	for s := 0; s < n; s++ {
		if dfa.Final[s] {
			block[s] = 1
		}
	}
	for {
		signature := make([]string, n)
		for s := 0; s < n; s++ {
			var sb strings.Builder
			sb.WriteString(strconv.Itoa(block[s]))
			for _, sym := range alphabet {
				sb.WriteByte('|')
				if to, ok := trans[s][sym]; ok {
					sb.WriteString(strconv.Itoa(block[to]))
				} else {
					sb.WriteString("-")
				}
			}
			signature[s] = sb.String()
		}
		sigToBlock := map[string]int{}
		newBlock := make([]int, n)
		nextID := 0
		// iterate states in order so block ids stay stable/deterministic
		for s := 0; s < n; s++ {
			id, ok := sigToBlock[signature[s]]
			if !ok {
				id = nextID
				nextID++
				sigToBlock[signature[s]] = id
			}
			newBlock[s] = id
		}
		changed := false
		maxOld, maxNew := -1, -1
		for s := 0; s < n; s++ {
			if block[s] > maxOld {
				maxOld = block[s]
			}
			if newBlock[s] > maxNew {
				maxNew = newBlock[s]
			}
		}
		if maxNew != maxOld {
			changed = true
		} else {
			for s := 0; s < n; s++ {
				if block[s] != newBlock[s] {
					changed = true
					break
				}
			}
		}
		block = newBlock
		if !changed {
			break
		}
	}
	numBlocks := 0
	for _, b := range block {
		if b+1 > numBlocks {
			numBlocks = b + 1
		}
	}
	min := NewNFA()
	for i := 0; i < numBlocks; i++ {
		min.AddState()
	}
	seenTrans := map[[2]interface{}]bool{}
	startBlocks := map[int]bool{}
	for s := 0; s < n; s++ {
		b := block[s]
		if dfa.Start[s] {
			if !startBlocks[b] {
				min.SetStart(b)
				startBlocks[b] = true
			}
		}
		if dfa.Final[s] {
			min.SetFinal(b)
		}
		for sym, to := range trans[s] {
			tb := block[to]
			if !transExists(seenTrans, b, sym, tb) {
				min.AddTrans(b, sym, tb)
				markTrans(seenTrans, b, sym, tb)
			}
		}
	}
	return min
}

func transExists(seen map[[2]interface{}]bool, from int, sym string, to int) bool {
	return seen[[2]interface{}{from, sym + "\x00" + strconv.Itoa(to)}]
}

func markTrans(seen map[[2]interface{}]bool, from int, sym string, to int) {
	seen[[2]interface{}{from, sym + "\x00" + strconv.Itoa(to)}] = true
}

// RegexToMinDFA compiles a regex into its minimal DFA (spec.md §4.2).
// alphabet is used only to resolve an unescaped '.'; pass nil when the
// pattern contains no '.'.
func RegexToMinDFA(pattern string, alphabet []string) (*NFA, error) {
	nfa, err := ParseRegex(pattern)
	if err != nil {
		return nil, err
	}
	if HasWildcard(nfa) {
		nfa = ExpandWildcard(nfa, alphabet)
	}
	dfa := ToDFA(nfa)
	return MinimizeDFA(dfa), nil
}
