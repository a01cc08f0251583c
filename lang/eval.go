package lang

import "log/slog"

// Eval computes the value of the tree rooted at root.
//
// Operands of a binary node are evaluated right first, then left, the same
// order in which compiled code pushes them, so both execution modes report
// the same failure for a given tree. Eval holds no state and is safe for
// concurrent use.
func Eval(root *Node, policy Policy) (Number, error) {
	if root == nil {
		return 0, ErrMalformedTree.With(slog.String("node", "nil"))
	}

	switch root.Kind {
	case NodeLiteral:
		return root.Value, nil

	case NodeBinary:
		right, err := Eval(root.Right, policy)
		if err != nil {
			return 0, err
		}

		left, err := Eval(root.Left, policy)
		if err != nil {
			return 0, err
		}

		v, err := policy.Apply(root.Op, left, right)
		if err != nil {
			return 0, WrapError(err).WithPosition(root.Pos)
		}

		return v, nil

	default:
		return 0, ErrMalformedTree.WithPosition(root.Pos).
			With(slog.String("kind", root.Kind.String()))
	}
}

// Validate reports the first structural defect in the tree rooted at root:
// a nil node, an unknown kind or operator, or a binary node missing a child.
func Validate(root *Node) error {
	if root == nil {
		return ErrMalformedTree.With(slog.String("node", "nil"))
	}

	switch root.Kind {
	case NodeLiteral:
		return nil

	case NodeBinary:
		if root.Op < OpAdd || root.Op > OpDiv {
			return ErrMalformedTree.WithPosition(root.Pos).
				With(slog.String("op", root.Op.String()))
		}

		if err := Validate(root.Right); err != nil {
			return err
		}

		return Validate(root.Left)

	default:
		return ErrMalformedTree.WithPosition(root.Pos).
			With(slog.String("kind", root.Kind.String()))
	}
}
