package core

// Flatten expands composite descriptors into their constituents, depth-first
// and pre-order, preserving relative order. Composites themselves never appear
// in the output. A composite reachable from itself indicates a broken platform
// producer and fails immediately.
func Flatten(descriptors []Descriptor) ([]Descriptor, error) {
	flattened := make([]Descriptor, 0, len(descriptors))
	return appendFlattened(flattened, descriptors, map[string]bool{})
}

func appendFlattened(out []Descriptor, descriptors []Descriptor, visiting map[string]bool) ([]Descriptor, error) {
	for _, descriptor := range descriptors {
		composite, ok := descriptor.(Composite)
		if !ok {
			out = append(out, descriptor)
			continue
		}
		id := composite.ID()
		if visiting[id] {
			return nil, compositeCycleError(id)
		}
		visiting[id] = true
		var err error
		out, err = appendFlattened(out, composite.Constituents(), visiting)
		if err != nil {
			return nil, err
		}
		delete(visiting, id)
	}
	return out, nil
}
