package dragmerge

import "sort"

// CardHand is an in-memory hand: a multiset of card ids.
type CardHand struct {
	counts map[int]int
	size   int
}

// NewCardHand creates a hand holding the given cards.
func NewCardHand(cardIDs ...int) *CardHand {
	h := &CardHand{counts: make(map[int]int)}
	for _, id := range cardIDs {
		h.Add(id)
	}
	return h
}

// Add puts one copy of cardID into the hand.
func (h *CardHand) Add(cardID int) {
	h.counts[cardID]++
	h.size++
}

// ConsumeCard removes one copy of cardID. Consuming a card the hand does not
// hold is a no-op.
func (h *CardHand) ConsumeCard(cardID int) {
	n := h.counts[cardID]
	if n == 0 {
		return
	}
	if n == 1 {
		delete(h.counts, cardID)
	} else {
		h.counts[cardID] = n - 1
	}
	h.size--
}

// Count returns how many copies of cardID the hand holds.
func (h *CardHand) Count(cardID int) int {
	return h.counts[cardID]
}

// Len returns the number of cards in the hand.
func (h *CardHand) Len() int {
	return h.size
}

// Cards lists the hand's cards in ascending id order, one entry per copy.
func (h *CardHand) Cards() []int {
	ids := make([]int, 0, h.size)
	for id, n := range h.counts {
		for i := 0; i < n; i++ {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
