package relayer

import (
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/lcnem/proximax-pegzone/cmd/pxbrelayer/txs"
)

type ObligationKind int

const (
	UnpegObligation ObligationKind = iota
	InvitationObligation
)

func (k ObligationKind) String() string {
	switch k {
	case UnpegObligation:
		return "unpeg"
	case InvitationObligation:
		return "invitation"
	default:
		return "unknown"
	}
}

// Obligation is a cosignature the mainchain should show before Deadline
type Obligation struct {
	Kind     ObligationKind
	TxHash   string
	Deadline time.Time

	Unpeg      txs.UnpegEvent
	Invitation txs.RequestInvitationEvent
}

func (o *Obligation) Less(than btree.Item) bool {
	other := than.(*Obligation)
	if !o.Deadline.Equal(other.Deadline) {
		return o.Deadline.Before(other.Deadline)
	}
	return o.TxHash < other.TxHash
}

// DeadlineQueue orders obligations by deadline. An obligation is identified by
// the hash of the tx that created it.
type DeadlineQueue struct {
	mtx    sync.Mutex
	tree   *btree.BTree
	byHash map[string]*Obligation
}

func NewDeadlineQueue() *DeadlineQueue {
	return &DeadlineQueue{
		tree:   btree.New(8),
		byHash: make(map[string]*Obligation),
	}
}

// Push adds o unless an obligation for the same tx is already tracked
func (q *DeadlineQueue) Push(o *Obligation) bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	if _, ok := q.byHash[o.TxHash]; ok {
		return false
	}
	q.byHash[o.TxHash] = o
	q.tree.ReplaceOrInsert(o)
	return true
}

func (q *DeadlineQueue) Remove(txHash string) bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	o, ok := q.byHash[txHash]
	if !ok {
		return false
	}
	delete(q.byHash, txHash)
	q.tree.Delete(o)
	return true
}

// PopDue removes and returns every obligation whose deadline is not after now,
// earliest first
func (q *DeadlineQueue) PopDue(now time.Time) []*Obligation {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	var due []*Obligation
	for q.tree.Len() > 0 {
		o := q.tree.Min().(*Obligation)
		if o.Deadline.After(now) {
			break
		}
		q.tree.DeleteMin()
		delete(q.byHash, o.TxHash)
		due = append(due, o)
	}
	return due
}

func (q *DeadlineQueue) Len() int {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	return q.tree.Len()
}

// Next returns the earliest deadline
func (q *DeadlineQueue) Next() (time.Time, bool) {
	q.mtx.Lock()
	defer q.mtx.Unlock()
	if q.tree.Len() == 0 {
		return time.Time{}, false
	}
	return q.tree.Min().(*Obligation).Deadline, true
}
