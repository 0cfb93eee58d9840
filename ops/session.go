package ops

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/npillmayer/odfops/event"
)

// Session serializes the execution of operations on a document and keeps
// a log of the operations executed successfully.
type Session struct {
	doc     Document
	factory *Factory
	clock   int64
	log     []Spec
}

// NewSession creates a session for a document. If factory is nil, a
// default factory is used.
func NewSession(doc Document, factory *Factory) *Session {
	if factory == nil {
		factory = NewFactory()
	}
	return &Session{doc: doc, factory: factory}
}

// Document returns the document of the session.
func (s *Session) Document() Document {
	return s.doc
}

// Enqueue executes a batch of operations in order. Each operation is
// re-created from its spec, stamped with the session clock unless it carries
// a timestamp, and executed. Operations returning false are skipped.
//
// A failed assertion aborts the batch; the error returned wraps ErrAssertion.
// A ProcessingBatchEnd event is emitted after every batch.
func (s *Session) Enqueue(ops ...Operation) (err error) {
	defer s.doc.Emit(event.ProcessingBatchEnd{})
	for _, op := range ops {
		if err = s.execute(op); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) execute(op Operation) (err error) {
	op, err = s.factory.CreateFromSpec(op.Spec())
	if err != nil {
		return err
	}
	h := op.header()
	s.clock++
	if h.Timestamp == 0 {
		h.Timestamp = s.clock
	} else if h.Timestamp > s.clock {
		s.clock = h.Timestamp
	}
	defer RecoverAssertion(&err)
	if !op.Execute(s.doc) {
		tracer().Infof("%s by %s not executed", h.OpType, h.MemberID)
		return nil
	}
	s.log = append(s.log, op.Spec())
	s.doc.Emit(event.OperationEnd{OpType: h.OpType, MemberID: h.MemberID, Timestamp: h.Timestamp})
	return nil
}

// Operations returns the specs of all operations executed successfully,
// in order of execution.
func (s *Session) Operations() []Spec {
	specs := make([]Spec, len(s.log))
	copy(specs, s.log)
	return specs
}

// Reset clears the operations log.
func (s *Session) Reset() {
	s.log = nil
}

// Replay executes the logged operations against another document, keeping
// their timestamps.
func (s *Session) Replay(doc Document) error {
	replay := NewSession(doc, s.factory)
	ops := make([]Operation, 0, len(s.log))
	for _, spec := range s.log {
		op, err := s.factory.CreateFromSpec(spec)
		if err != nil {
			return fmt.Errorf("replaying: %w", err)
		}
		ops = append(ops, op)
	}
	return replay.Enqueue(ops...)
}

// NewMemberID creates a random id for a session member.
func NewMemberID() string {
	id, err := uuid.NewV4()
	if err != nil {
		tracer().Errorf("creating member id: %v", err)
		return "member"
	}
	return id.String()
}
