package model

// Decorator enriches or cleans a block after it has been decoded from content
// and before it reaches a renderer.
type Decorator interface {
	Decorate(*Block) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*Block) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(block *Block) error {
	return fn(block)
}

// ApplyDecorators runs decorators in order, stopping at the first error.
func ApplyDecorators(block *Block, decorators ...Decorator) error {
	if block == nil {
		return nil
	}
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(block); err != nil {
			return err
		}
	}
	return nil
}
