package pos

import (
	"container/heap"
	"sort"

	"experimentallabor.de/gertag/classify"
	"experimentallabor.de/gertag/utils"
)

const minSequenceScore = -100000

// beamSearch keeps the size best partial taggings per position. Each
// candidate is expanded with the labels scoring at least as high as the
// size-th best label.
func (t *Tagger) beamSearch(words []string, classifier classify.ProbClassifier) (Sequence, error) {
	size := t.beamSize
	prev := make(utils.PriorityQueue, 0, size)
	heap.Init(&prev)
	next := make(utils.PriorityQueue, 0, size)
	heap.Init(&next)
	heap.Push(&prev, Sequence{})

	for i := 0; i < len(words); i++ {
		sz := len(prev)
		if size < sz {
			sz = size
		}

		for sc := 0; len(prev) > 0 && sc < sz; sc++ {
			top := heap.Pop(&prev).(Sequence)

			features := t.detector.Detect(words, i, top.Outcomes)
			dist, err := classifier.ProbClassify(features)
			if err != nil {
				return Sequence{}, err
			}

			min := kthBest(dist, size)
			expanded := false
			for _, lp := range dist {
				if lp.Prob < min {
					continue
				}
				expanded = t.expand(&next, top, words, i, lp) || expanded
			}

			if !expanded {
				for _, lp := range dist {
					t.expand(&next, top, words, i, lp)
				}
			}
		}

		if len(next) == 0 {
			return Sequence{}, &NoTagError{Index: i, Word: words[i]}
		}

		prev = utils.PriorityQueue{}
		heap.Init(&prev)
		prev, next = next, prev
	}

	return heap.Pop(&prev).(Sequence), nil
}

func (t *Tagger) expand(next *utils.PriorityQueue, top Sequence, words []string, i int, lp classify.LabelProb) bool {
	if lp.Label == "" || !t.validator.ValidSequence(i, words, lp.Label) {
		return false
	}
	var ns Sequence
	ns.ExpandFrom(top, lp.Label, lp.Prob)
	if ns.Score <= minSequenceScore {
		return false
	}
	heap.Push(next, ns)
	return true
}

func kthBest(dist classify.Distribution, k int) float64 {
	probs := make([]float64, len(dist))
	for i, lp := range dist {
		probs[i] = lp.Prob
	}
	sort.Float64s(probs)

	idx := len(probs) - k
	if idx < 0 {
		idx = 0
	}
	if len(probs) == 0 {
		return 0
	}
	return probs[idx]
}
