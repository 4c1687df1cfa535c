package lang

import (
	"log/slog"
	"math"
)

func evalUnaryOp(op UnaryOp, x *Value) (*Value, error) {
	switch op {
	case OpNeg:
		if x.Kind != ValueNumber {
			return nil, ErrTypeMismatch.With(
				slog.String("op", "-"),
				slog.String("operand", x.Kind.String()),
			)
		}

		return NewNumber(-x.Number), nil

	case OpNot:
		if x.Kind != ValueBool {
			return nil, ErrTypeMismatch.With(
				slog.String("op", "!"),
				slog.String("operand", x.Kind.String()),
			)
		}

		return NewBool(!x.Bool), nil
	}

	return nil, ErrTypeMismatch.With(slog.String("op", "unknown unary operator"))
}

func evalBinaryOp(ctx *evalContext, op BinaryOp, x, y *Value) (*Value, error) {
	switch op {
	case OpAdd:
		return evalAdd(x, y)
	case OpSub:
		return evalArith(op, x, y)
	case OpMul:
		return evalArith(op, x, y)
	case OpDiv:
		return evalArith(op, x, y)
	case OpMod:
		return evalArith(op, x, y)
	case OpEq:
		eq, err := valuesEqual(ctx, x, y)
		if err != nil {
			return nil, err
		}

		return NewBool(eq), nil
	case OpNotEq:
		eq, err := valuesEqual(ctx, x, y)
		if err != nil {
			return nil, err
		}

		return NewBool(!eq), nil
	}

	return nil, ErrTypeMismatch.With(slog.String("op", "unknown binary operator"))
}

func evalAdd(x, y *Value) (*Value, error) {
	switch {
	case x.Kind == ValueNumber && y.Kind == ValueNumber:
		return NewNumber(x.Number + y.Number), nil
	case x.Kind == ValueString && y.Kind == ValueString:
		return NewString(x.Str + y.Str), nil
	case x.Kind == ValueString && y.Kind == ValueNumber:
		return NewString(x.Str + formatNumber(y.Number)), nil
	case x.Kind == ValueNumber && y.Kind == ValueString:
		return NewString(formatNumber(x.Number) + y.Str), nil
	}

	return nil, ErrTypeMismatch.With(
		slog.String("op", "+"),
		slog.String("left", x.Kind.String()),
		slog.String("right", y.Kind.String()),
	)
}

func evalArith(op BinaryOp, x, y *Value) (*Value, error) {
	if x.Kind != ValueNumber || y.Kind != ValueNumber {
		return nil, ErrTypeMismatch.With(
			slog.String("op", binaryOpName(op)),
			slog.String("left", x.Kind.String()),
			slog.String("right", y.Kind.String()),
		)
	}

	switch op {
	case OpSub:
		return NewNumber(x.Number - y.Number), nil
	case OpMul:
		return NewNumber(x.Number * y.Number), nil
	case OpDiv:
		if y.Number == 0 {
			return nil, ErrDivisionByZero.With(slog.String("op", "/"))
		}

		return NewNumber(x.Number / y.Number), nil
	case OpMod:
		if y.Number == 0 {
			return nil, ErrDivisionByZero.With(slog.String("op", "%"))
		}

		return NewNumber(math.Mod(x.Number, y.Number)), nil
	}

	return nil, ErrTypeMismatch.With(slog.String("op", "unknown arithmetic operator"))
}
