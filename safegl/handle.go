package safegl

// noCopy makes go vet's copylocks check flag handles copied by value. A copy
// would let two owners delete the same driver object.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// object is the ownership core shared by every handle.
type object struct {
	noCopy noCopy
	c      *Context
	name   Name
}

// Name returns the driver identifier, or None once the handle has been
// deleted or disowned.
func (o *object) Name() Name { return o.name }

// Disown gives up ownership and returns the identifier. The handle becomes
// empty and its Delete a no-op; the caller is now responsible for the object.
func (o *object) Disown() Name {
	n := o.name
	o.name = None
	return n
}

func (o *object) live() error {
	if o.name == None {
		return ErrDeleted
	}
	return nil
}

// release runs del exactly once for a non-sentinel name and checks the
// driver afterwards.
func (o *object) release(op string, del func(Name)) error {
	if o.name == None {
		return nil
	}
	n := o.name
	o.name = None
	del(n)
	o.c.logger().Debug("delete", "op", op, "name", n)
	return o.c.check(op)
}
