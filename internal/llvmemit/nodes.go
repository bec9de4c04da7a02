package llvmemit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shadow-lang/shadowc/internal/tac"
	"github.com/shadow-lang/shadowc/internal/types"
)

// methodState is the per-method naming state the ABI's tie-break rules
// govern: SSA temporaries are allocated sequentially beginning at
// parameters.size()+1, and block labels get monotonically increasing
// integer IDs, both scoped to one method.
type methodState struct {
	reg    int
	labels map[*tac.Block]string
	nextLabel int
}

func (e *Emitter) emitMethod(m *tac.Method) error {
	sig := m.Signature
	retType := e.mapType(sig.Results.Unwrap())

	params := make([]string, 0, len(m.Locals))
	paramCount := 0
	for _, lv := range m.Locals {
		if !lv.IsParam {
			continue
		}
		params = append(params, fmt.Sprintf("%s %%%s", e.mapType(lv.Type), lv.Name))
		paramCount++
	}

	e.emitf("define %s @%s(%s) personality i32 (...)* @__shadow_personality_v0 {", retType, mangleMethod(sig), strings.Join(params, ", "))

	st := &methodState{reg: paramCount + 1, labels: make(map[*tac.Block]string)}
	e.emit("entry:")
	for _, lv := range m.Locals {
		e.emitf("  %%local.%s = alloca %s", lv.Name, e.mapType(lv.Type))
	}
	for _, lv := range m.Locals {
		if lv.IsParam {
			e.emitf("  store %s %%%s, %s* %%local.%s", e.mapType(lv.Type), lv.Name, e.mapType(lv.Type), lv.Name)
		}
	}

	if err := e.emitBlock(st, m.Entry); err != nil {
		return err
	}

	e.emit("}")
	e.emit("")
	return nil
}

func (e *Emitter) emitBlock(st *methodState, b *tac.Block) error {
	e.emitf("%s:", e.labelFor(st, b))
	for n := b.Head; n != nil; n = n.Next {
		if err := e.emitNode(st, n); err != nil {
			return err
		}
	}
	for _, nested := range b.Nested {
		if err := e.emitBlock(st, nested); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) labelFor(st *methodState, b *tac.Block) string {
	if name, ok := st.labels[b]; ok {
		return name
	}
	name := fmt.Sprintf("L%d", st.nextLabel)
	st.nextLabel++
	st.labels[b] = name
	return name
}

func (e *Emitter) nextReg(st *methodState) string {
	r := fmt.Sprintf("%%%d", st.reg)
	st.reg++
	return r
}

// resolveOperand renders v as an LLVM value usable directly in an
// instruction operand position. A Register substitutes the defining
// node's assigned SSA name; a named Local/Param materializes a fresh load
// from its alloca slot, since the TAC model treats a local read as a bare
// named value rather than requiring an explicit Load node the way a field
// or array element does.
func (e *Emitter) resolveOperand(st *methodState, v tac.Value) string {
	switch v.Kind {
	case tac.ValRegister:
		return v.Node.Data
	case tac.ValConstInt:
		return strconv.FormatInt(v.Int, 10)
	case tac.ValConstFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case tac.ValConstBool:
		if v.Bool {
			return "1"
		}
		return "0"
	case tac.ValConstNull:
		return "null"
	case tac.ValConstString:
		return "@" + e.stringConstant(v.Str)
	case tac.ValLocal, tac.ValParam:
		reg := e.nextReg(st)
		ty := e.mapType(v.Type)
		e.emitf("  %s = load %s, %s* %%local.%s", reg, ty, ty, v.Name)
		return reg
	default:
		return "undef"
	}
}

func (e *Emitter) operandType(v tac.Value) string {
	return e.mapType(v.Type)
}

func (e *Emitter) emitNode(st *methodState, n *tac.Node) error {
	switch n.Kind {
	case tac.KindLabel, tac.KindNoOp:
		return nil

	case tac.KindBranch:
		return e.emitBranch(st, n)

	case tac.KindLoad:
		return e.emitLoad(st, n)

	case tac.KindStore:
		return e.emitStore(st, n)

	case tac.KindCall:
		return e.emitCall(st, n)

	case tac.KindReturn:
		return e.emitReturn(st, n)

	case tac.KindCast:
		return e.emitCast(st, n)

	case tac.KindNewObject:
		return e.emitNewObject(st, n)

	case tac.KindNewArray:
		return e.emitNewArray(st, n)

	case tac.KindBinary:
		return e.emitBinary(st, n)

	case tac.KindUnary:
		return e.emitUnary(st, n)

	case tac.KindThrow:
		return e.emitThrow(st, n)

	case tac.KindCatchSwitch:
		return e.emitCatchSwitch(st, n)

	case tac.KindCatchPad:
		return e.emitCatchPad(st, n)

	case tac.KindCleanupPad:
		n.Data = e.nextReg(st)
		e.emitf("  %s = cleanuppad within none []", n.Data)
		return nil

	case tac.KindResume:
		e.emit("  resume { i8*, i32 } zeroinitializer")
		return nil

	case tac.KindLandingPad:
		n.Data = e.nextReg(st)
		e.emitf("  %s = landingpad { i8*, i32 } cleanup", n.Data)
		return nil

	case tac.KindPhi:
		return e.emitPhi(st, n)

	default:
		return fmt.Errorf("llvmemit: unhandled node kind %v", n.Kind)
	}
}

func (e *Emitter) emitBranch(st *methodState, n *tac.Node) error {
	if n.Target2 != nil {
		cond := e.resolveOperand(st, n.Operands[0])
		e.emitf("  br i1 %s, label %%%s, label %%%s", cond, e.labelFor(st, n.Target1), e.labelFor(st, n.Target2))
		return nil
	}
	e.emitf("  br label %%%s", e.labelFor(st, n.Target1))
	return nil
}

// locationPointer renders a Load/Store's Location as the pointer operand
// the instruction reads or writes through: a local/param's alloca, a
// field's getelementptr off the receiver register (or the implicit self
// parameter when Location.Node is nil), or an array element's
// getelementptr using n's index Operands.
func (e *Emitter) locationPointer(st *methodState, n *tac.Node, loc tac.Value) string {
	switch loc.Kind {
	case tac.ValLocal, tac.ValParam:
		return "%local." + loc.Name
	case tac.ValGlobal:
		return "@global." + sanitizeName(loc.Name)
	case tac.ValField:
		receiver := "%self"
		if loc.Node != nil {
			receiver = loc.Node.Data
		}
		reg := e.nextReg(st)
		e.emitf("  %s = getelementptr inbounds %s, %s %s, i32 0, i32 %d",
			reg, e.mapType(loc.Type), e.mapType(loc.Type)+"*", receiver, 3 /* placeholder field offset */)
		return reg
	default:
		// array element load: loc holds the array struct, n.Operands the indices
		arr := e.resolveOperand(st, loc)
		idx := e.resolveOperand(st, n.Operands[0])
		reg := e.nextReg(st)
		e.emitf("  %s = getelementptr inbounds %s, %s %s, i32 %s",
			reg, e.mapType(loc.Type), e.mapType(loc.Type), arr, idx)
		return reg
	}
}

func (e *Emitter) emitLoad(st *methodState, n *tac.Node) error {
	ptr := e.locationPointer(st, n, n.Location)
	n.Data = e.nextReg(st)
	ty := e.mapType(n.Type)
	e.emitf("  %s = load %s, %s* %s", n.Data, ty, ty, ptr)
	return nil
}

func (e *Emitter) emitStore(st *methodState, n *tac.Node) error {
	val := e.resolveOperand(st, n.StoreValue)
	ptr := e.locationPointer(st, n, n.Location)
	ty := e.operandType(n.StoreValue)
	e.emitf("  store %s %s, %s* %s", ty, val, ty, ptr)
	return nil
}

func (e *Emitter) emitCall(st *methodState, n *tac.Node) error {
	args := make([]string, len(n.Operands))
	for i, op := range n.Operands {
		args[i] = e.operandType(op) + " " + e.resolveOperand(st, op)
	}
	callee := "@" + mangleMethod(n.Callee)
	if n.Virtual {
		callee = "%vtable_lookup_" + mangleMethod(n.Callee)
	}
	if n.Result {
		n.Data = e.nextReg(st)
		e.emitf("  %s = call %s %s(%s)", n.Data, e.mapType(n.Type), callee, strings.Join(args, ", "))
	} else {
		e.emitf("  call void %s(%s)", callee, strings.Join(args, ", "))
	}
	return nil
}

func (e *Emitter) emitReturn(st *methodState, n *tac.Node) error {
	switch len(n.Operands) {
	case 0:
		e.emit("  ret void")
	case 1:
		v := e.resolveOperand(st, n.Operands[0])
		e.emitf("  ret %s %s", e.operandType(n.Operands[0]), v)
	default:
		ty := e.sequenceType(n.Operands)
		agg := "undef"
		for i, op := range n.Operands {
			reg := e.nextReg(st)
			e.emitf("  %s = insertvalue %s %s, %s %s, %d", reg, ty, agg, e.operandType(op), e.resolveOperand(st, op), i)
			agg = reg
		}
		e.emitf("  ret %s %s", ty, agg)
	}
	return nil
}

func (e *Emitter) sequenceType(vals []tac.Value) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = e.operandType(v)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (e *Emitter) emitCast(st *methodState, n *tac.Node) error {
	from := n.Operands[0]
	v := e.resolveOperand(st, from)
	n.Data = e.nextReg(st)
	op := castOp(from.Type, n.CastTo)
	e.emitf("  %s = %s %s %s to %s", n.Data, op, e.operandType(from), v, e.mapType(n.CastTo))
	return nil
}

func castOp(from, to types.Type) string {
	fp, fromIsPrim := from.(*types.PrimitiveType)
	tp, toIsPrim := to.(*types.PrimitiveType)
	switch {
	case fromIsPrim && toIsPrim && types.IsInteger(fp.Kind()) && (tp.Kind() == types.Float || tp.Kind() == types.Double):
		return "sitofp"
	case fromIsPrim && toIsPrim && (fp.Kind() == types.Float || fp.Kind() == types.Double) && types.IsInteger(tp.Kind()):
		return "fptosi"
	case fromIsPrim && toIsPrim:
		return "bitcast"
	default:
		return "bitcast"
	}
}

func (e *Emitter) emitNewObject(st *methodState, n *tac.Node) error {
	name := sanitizeName(n.ClassRef.QualifiedName())
	raw := e.nextReg(st)
	e.emitf("  %s = call i8* @__allocate(i64 ptrtoint (%%class.%s* getelementptr (%%class.%s, %%class.%s* null, i32 1) to i64))",
		raw, name, name, name)
	n.Data = e.nextReg(st)
	e.emitf("  %s = bitcast i8* %s to %%class.%s*", n.Data, raw, name)

	args := make([]string, 0, len(n.Operands)+1)
	args = append(args, "%class."+name+"* "+n.Data)
	for _, op := range n.Operands {
		args = append(args, e.operandType(op)+" "+e.resolveOperand(st, op))
	}
	if n.Callee != nil {
		e.emitf("  call void @%s(%s)", mangleMethod(n.Callee), strings.Join(args, ", "))
	}
	return nil
}

func (e *Emitter) emitNewArray(st *methodState, n *tac.Node) error {
	elemSize := e.nextReg(st)
	elemTy := e.mapType(n.ArrayElem)
	e.emitf("  %s = ptrtoint %s* getelementptr (%s, %s* null, i32 1) to i64", elemSize, elemTy, elemTy, elemTy)
	length := e.resolveOperand(st, n.Operands[0])
	raw := e.nextReg(st)
	e.emitf("  %s = call i8* @__allocateArray(i64 %s, i64 %s)", raw, elemSize, length)
	n.Data = e.nextReg(st)
	e.emitf("  %s = bitcast i8* %s to %s", n.Data, raw, e.mapType(n.Type))
	return nil
}

var binaryOps = map[string]string{
	"+": "add", "-": "sub", "*": "mul", "/": "sdiv", "%": "srem",
	"==": "icmp eq", "!=": "icmp ne", "<": "icmp slt", "<=": "icmp sle",
	">": "icmp sgt", ">=": "icmp sge",
	"&&": "and", "||": "or", "&": "and", "|": "or", "^": "xor",
	"<<": "shl", ">>": "ashr",
}

func (e *Emitter) emitBinary(st *methodState, n *tac.Node) error {
	lhs := e.resolveOperand(st, n.Operands[0])
	rhs := e.resolveOperand(st, n.Operands[1])
	op, ok := binaryOps[n.Label]
	if !ok {
		return fmt.Errorf("llvmemit: unknown binary operator %q", n.Label)
	}
	n.Data = e.nextReg(st)
	e.emitf("  %s = %s %s %s, %s", n.Data, op, e.operandType(n.Operands[0]), lhs, rhs)
	return nil
}

func (e *Emitter) emitUnary(st *methodState, n *tac.Node) error {
	v := e.resolveOperand(st, n.Operands[0])
	ty := e.operandType(n.Operands[0])
	n.Data = e.nextReg(st)
	switch n.Label {
	case "-":
		e.emitf("  %s = sub %s 0, %s", n.Data, ty, v)
	case "!":
		e.emitf("  %s = xor %s %s, 1", n.Data, ty, v)
	default:
		return fmt.Errorf("llvmemit: unknown unary operator %q", n.Label)
	}
	return nil
}

func (e *Emitter) emitThrow(st *methodState, n *tac.Node) error {
	v := e.resolveOperand(st, n.Operands[0])
	e.emitf("  call void @__shadow_throw(i8* %s) noreturn", v)
	e.emit("  unreachable")
	return nil
}

func (e *Emitter) emitCatchSwitch(st *methodState, n *tac.Node) error {
	n.Data = e.nextReg(st)
	handlers := make([]string, len(n.Handlers))
	for i, h := range n.Handlers {
		handlers[i] = "label %" + e.labelFor(st, h)
	}
	unwind := "to caller"
	if n.Unwind != nil {
		unwind = "to label %" + e.labelFor(st, n.Unwind)
	}
	e.emitf("  %s = catchswitch within none [%s] unwind %s", n.Data, strings.Join(handlers, ", "), unwind)
	return nil
}

func (e *Emitter) emitCatchPad(st *methodState, n *tac.Node) error {
	filter := "i8* null"
	if n.ExceptionType != nil {
		filter = "i8* @class." + sanitizeName(n.ExceptionType.QualifiedName()) + ".typeinfo"
	}
	n.Data = e.nextReg(st)
	within := "none"
	if n.CatchSwitch != nil {
		within = n.CatchSwitch.Data
	}
	e.emitf("  %s = catchpad within %s [%s]", n.Data, within, filter)
	e.emitf("  call i8* @__shadow_catch(i8* null, %s)", filter)
	return nil
}

func (e *Emitter) emitPhi(st *methodState, n *tac.Node) error {
	edges := make([]string, len(n.PhiEdges))
	for i, ed := range n.PhiEdges {
		edges[i] = fmt.Sprintf("[ %s, %%%s ]", e.resolveOperand(st, ed.Value), e.labelFor(st, ed.Block))
	}
	n.Data = e.nextReg(st)
	e.emitf("  %s = phi %s %s", n.Data, e.mapType(n.Type), strings.Join(edges, ", "))
	return nil
}
