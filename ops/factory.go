package ops

import (
	"encoding/json"
	"fmt"
)

// Factory creates operations from their JSON specs.
type Factory struct {
	constructors map[string]func() Operation
}

// NewFactory creates a factory knowing all operation types of this package.
func NewFactory() *Factory {
	f := &Factory{constructors: make(map[string]func() Operation)}
	f.Register(OpAddCursor, func() Operation { return &AddCursor{} })
	f.Register(OpRemoveCursor, func() Operation { return &RemoveCursor{} })
	f.Register(OpMoveCursor, func() Operation { return &MoveCursor{} })
	f.Register(OpAddList, func() Operation { return &AddList{} })
	f.Register(OpRemoveList, func() Operation { return &RemoveList{} })
	f.Register(OpSplitList, func() Operation { return &SplitList{} })
	f.Register(OpMergeList, func() Operation { return &MergeList{} })
	f.Register(OpAddListStyle, func() Operation { return &AddListStyle{} })
	return f
}

// Register sets the constructor for an operation type, replacing an
// existing one.
func (f *Factory) Register(optype string, create func() Operation) {
	f.constructors[optype] = create
}

// validator is implemented by operations checking their spec beyond
// JSON decoding.
type validator interface {
	Validate() error
}

// Create decodes a JSON spec and returns the operation it describes.
func (f *Factory) Create(data []byte) (Operation, error) {
	var head Header
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	create, ok := f.constructors[head.OpType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpType, head.OpType)
	}
	op := create()
	if err := json.Unmarshal(data, op); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpec, head.OpType, err)
	}
	if op.header().OpType != head.OpType {
		return nil, fmt.Errorf("%w: %s decodes as %s", ErrInvalidSpec, head.OpType, op.header().OpType)
	}
	if v, ok := op.(validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSpec, head.OpType, err)
		}
	}
	return op, nil
}

// CreateFromSpec re-creates an operation from a spec.
func (f *Factory) CreateFromSpec(spec Spec) (Operation, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return f.Create(data)
}

// CreateAll decodes a JSON array of specs.
func (f *Factory) CreateAll(data []byte) ([]Operation, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	ops := make([]Operation, 0, len(raw))
	for i, r := range raw {
		op, err := f.Create(r)
		if err != nil {
			return nil, fmt.Errorf("spec #%d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}
