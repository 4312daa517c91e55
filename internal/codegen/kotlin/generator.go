package kotlin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/componentry/ffigen/internal/codegen/writer"
	"github.com/componentry/ffigen/internal/schema"
)

// Generator emits Kotlin/JNA bindings for a native component's
// interface model
type Generator struct {
	packageName string
}

// NewGenerator creates a new Kotlin binding generator. An empty
// packageName defaults to "ffigen.<namespace>" at generation time.
func NewGenerator(packageName string) *Generator {
	return &Generator{packageName: packageName}
}

// Language returns the name of the target language
func (g *Generator) Language() string {
	return "kotlin"
}

// FileExtension returns the file extension for generated files
func (g *Generator) FileExtension() string {
	return ".kt"
}

// Generate emits one Kotlin source file for the whole model: buffer
// and codec helpers, the foreign-call interface block, and one
// declaration per enum, record, and function. Items fail
// independently: the returned bytes hold every item that generated
// cleanly, and the error joins one diagnostic per failed item.
func (g *Generator) Generate(model *schema.InterfaceModel) ([]byte, error) {
	pkg := g.packageName
	if pkg == "" {
		pkg = fmt.Sprintf("ffigen.%s", model.Namespace)
	}

	var errs []error

	// Functions render first: their foreign-call declarations feed the
	// _FFILib block even though the wrappers appear last in the file.
	var ffiDecls []string
	var wrappers []string
	for _, fn := range model.Functions {
		decl, wrapper, err := g.generateFunction(model, fn)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ffiDecls = append(ffiDecls, decl)
		wrappers = append(wrappers, wrapper)
	}

	enums := make([]string, 0, len(model.Enums))
	for _, e := range model.Enums {
		enums = append(enums, g.generateEnum(e))
	}

	var records []string
	for _, r := range model.Records {
		text, err := g.generateRecord(model, r)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, text)
	}

	// Objects have no Kotlin mapping yet; each is its own failed item.
	for _, o := range model.Objects {
		errs = append(errs, itemErr(fmt.Sprintf("object %s", o.Name), unsupported(schema.Object(o.Name))))
	}

	w := writer.NewWriter(indentUnit)
	g.writeHeader(w, model, pkg)
	g.writeRustBuffer(w)
	g.writeFFILib(w, model, ffiDecls)
	g.writeCodecHelpers(w, model)

	for _, text := range enums {
		w.BlankLine()
		w.Write(text)
	}
	for _, text := range records {
		w.BlankLine()
		w.Write(text)
	}
	for _, text := range wrappers {
		w.BlankLine()
		w.Write(text)
	}

	return w.Bytes(), errors.Join(errs...)
}

func (g *Generator) writeHeader(w *writer.Writer, model *schema.InterfaceModel, pkg string) {
	w.WriteComment(fmt.Sprintf("AUTO-GENERATED by ffigen for component %q. Do not edit by hand;", model.Namespace))
	w.WriteComment("regenerate from the interface model instead.")
	w.BlankLine()
	w.WriteLinef("package %s", pkg)
	w.BlankLine()
	w.WriteLine("import com.sun.jna.Library")
	w.WriteLine("import com.sun.jna.Native")
	w.WriteLine("import com.sun.jna.Pointer")
	w.WriteLine("import com.sun.jna.Structure")
	w.WriteLine("import java.nio.ByteBuffer")
	w.WriteLine("import java.nio.ByteOrder")
	w.BlankLine()
}

func (g *Generator) writeRustBuffer(w *writer.Writer) {
	w.WriteComment("A native-allocated byte region crossing the foreign-function boundary")
	w.WriteComment("by value as a (length, data) pair.")
	w.WriteLine(`@Structure.FieldOrder("len", "data")`)
	w.WriteLine("open class RustBuffer : Structure() {")
	w.Indent()
	w.WriteLine("@JvmField var len: Long = 0")
	w.WriteLine("@JvmField var data: Pointer? = null")
	w.BlankLine()
	w.WriteLine("class ByValue : RustBuffer(), Structure.ByValue")
	w.BlankLine()
	w.WriteLine("fun asByteBuffer(): ByteBuffer? =")
	w.Indent()
	w.WriteLine("data?.getByteBuffer(0, len)?.also { it.order(ByteOrder.BIG_ENDIAN) }")
	w.Dedent()
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	w.WriteComment(`Loads the native component library "ffigen_<name>" from the JVM library path.`)
	w.WriteLine("private inline fun <reified Lib : Library> loadIndirect(componentName: String): Lib =")
	w.Indent()
	w.WriteLine(`Native.load("ffigen_" + componentName, Lib::class.java)`)
	w.Dedent()
	w.BlankLine()
}

func (g *Generator) writeFFILib(w *writer.Writer, model *schema.InterfaceModel, fnDecls []string) {
	allocDecl, _ := ffiDecl(model.BufferAllocFn())
	freeDecl, _ := ffiDecl(model.BufferFreeFn())

	w.WriteComment("The low-level foreign-call interface: one method per exported entry")
	w.WriteComment("point of the native component.")
	w.WriteLine("internal interface _FFILib : Library {")
	w.Indent()
	w.WriteLine("companion object {")
	w.Indent()
	w.WriteComment("Process-wide handle to the component: created on first use, live")
	w.WriteComment("until process exit, never reinitialized.")
	w.WriteLinef("internal val INSTANCE: _FFILib by lazy { loadIndirect<_FFILib>(componentName = %q) }", model.Namespace)
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	w.WriteLine(allocDecl)
	w.WriteLine(freeDecl)
	for _, d := range fnDecls {
		w.WriteLine(d)
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
}

func (g *Generator) writeCodecHelpers(w *writer.Writer, model *schema.InterfaceModel) {
	alloc := model.BufferAllocFn().Symbol
	free := model.BufferFreeFn().Symbol

	w.WriteComment("Allocates a native buffer of exactly size bytes, runs write into it,")
	w.WriteComment("and returns it ready to pass by value. If write fails, the buffer is")
	w.WriteComment("returned to the native side before the failure propagates.")
	w.WriteLine("internal fun lowerIntoRustBuffer(size: Int, write: (ByteBuffer) -> Unit): RustBuffer.ByValue {")
	w.Indent()
	w.WriteLinef("val rbuf = _FFILib.INSTANCE.%s(size)", alloc)
	w.WriteLine("try {")
	w.Indent()
	w.WriteLine("write(rbuf.asByteBuffer()!!)")
	w.WriteLine("return rbuf")
	w.Dedent()
	w.WriteLine("} catch (e: Throwable) {")
	w.Indent()
	w.WriteLine("try {")
	w.Indent()
	w.WriteLinef("_FFILib.INSTANCE.%s(rbuf)", free)
	w.Dedent()
	w.WriteLine("} catch (ignored: Throwable) {")
	w.Indent()
	w.WriteComment("the write failure takes precedence over cleanup")
	w.Dedent()
	w.WriteLine("}")
	w.WriteLine("throw e")
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	w.WriteComment("Decodes a native buffer with read and always returns the buffer to the")
	w.WriteComment("native side, whether or not decoding succeeds. Bytes left in the buffer")
	w.WriteComment("after decoding mean the bindings and the installed component disagree")
	w.WriteComment("about the interface schema.")
	w.WriteLine("internal fun <T> liftFromRustBuffer(rbuf: RustBuffer.ByValue, read: (ByteBuffer) -> T): T {")
	w.Indent()
	w.WriteLine("var failure: Throwable? = null")
	w.WriteLine("try {")
	w.Indent()
	w.WriteLine("val buf = rbuf.asByteBuffer()!!")
	w.WriteLine("val value = read(buf)")
	w.WriteLine("if (buf.hasRemaining()) {")
	w.Indent()
	w.WriteLine(`throw RuntimeException("junk remaining in buffer after lifting, something is very wrong!!")`)
	w.Dedent()
	w.WriteLine("}")
	w.WriteLine("return value")
	w.Dedent()
	w.WriteLine("} catch (e: Throwable) {")
	w.Indent()
	w.WriteLine("failure = e")
	w.WriteLine("throw e")
	w.Dedent()
	w.WriteLine("} finally {")
	w.Indent()
	w.WriteLine("if (failure == null) {")
	w.Indent()
	w.WriteLinef("_FFILib.INSTANCE.%s(rbuf)", free)
	w.Dedent()
	w.WriteLine("} else {")
	w.Indent()
	w.WriteLine("try {")
	w.Indent()
	w.WriteLinef("_FFILib.INSTANCE.%s(rbuf)", free)
	w.Dedent()
	w.WriteLine("} catch (ignored: Throwable) {")
	w.Indent()
	w.WriteComment("the decode failure takes precedence over cleanup")
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	w.WriteLine("internal fun serializedStringSize(v: String): Int = 4 + v.toByteArray(Charsets.UTF_8).size")
	w.BlankLine()
	w.WriteLine("internal fun serializeStringInto(v: String, buf: ByteBuffer) {")
	w.Indent()
	w.WriteLine("val bytes = v.toByteArray(Charsets.UTF_8)")
	w.WriteLine("buf.putInt(bytes.size)")
	w.WriteLine("buf.put(bytes)")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	w.WriteLine("internal fun deserializeString(buf: ByteBuffer): String {")
	w.Indent()
	w.WriteLine("val len = buf.getInt()")
	w.WriteLine("val bytes = ByteArray(len)")
	w.WriteLine("buf.get(bytes)")
	w.WriteLine("return String(bytes, Charsets.UTF_8)")
	w.Dedent()
	w.WriteLine("}")
}

// generateEnum emits a Kotlin enum class whose declared value order is
// the 1-based wire ordinal mapping, plus the codec methods that let
// the enum compose inside records and optionals.
func (g *Generator) generateEnum(e schema.EnumDefinition) string {
	w := writer.NewWriter(indentUnit)

	w.WriteLinef("enum class %s {", e.Name)
	w.Indent()
	for i, v := range e.Values {
		if i == len(e.Values)-1 {
			w.WriteLinef("%s;", v)
		} else {
			w.WriteLinef("%s,", v)
		}
	}
	w.BlankLine()
	w.WriteLine("internal fun serializeForRustSize(): Int = 4")
	w.BlankLine()
	w.WriteLine("internal fun serializeForRustInto(buf: ByteBuffer) {")
	w.Indent()
	w.WriteLine("buf.putInt(this.ordinal + 1)")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	w.WriteLine("companion object {")
	w.Indent()
	w.WriteLinef("internal fun fromOrdinal(n: Int): %s {", e.Name)
	w.Indent()
	w.WriteLine("return when (n) {")
	w.Indent()
	for i, v := range e.Values {
		w.WriteLinef("%d -> %s", i+1, v)
	}
	w.WriteLine(`else -> throw RuntimeException("invalid enum value, something is very wrong!!")`)
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()
	w.WriteLinef("internal fun deserializeItemFromRust(buf: ByteBuffer): %s = fromOrdinal(buf.getInt())", e.Name)
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")

	return w.String()
}

// generateRecord emits a Kotlin data class with the codec methods the
// wire contract requires; size, encode, and decode all walk the fields
// strictly in declared order.
func (g *Generator) generateRecord(model *schema.InterfaceModel, r schema.RecordDefinition) (string, error) {
	item := fmt.Sprintf("record %s", r.Name)

	// Resolve every field before emitting, so a failed record leaves no
	// partial text behind.
	type fieldParts struct {
		surface string
		size    string
		write   []string
		read    string
		local   bool
	}
	parts := make([]fieldParts, 0, len(r.Fields))
	for _, f := range r.Fields {
		if err := checkResolves(model, f.Type); err != nil {
			return "", itemErr(item, err)
		}
		surface, err := SurfaceType(f.Type)
		if err != nil {
			return "", itemErr(item, err)
		}
		size, err := SizeExpr(f.Type, "this."+f.Name)
		if err != nil {
			return "", itemErr(item, err)
		}
		// Optional fields bind a local first: null checks need a stable
		// val the compiler can smart-cast.
		local := f.Type.Kind == schema.KindOptional
		valueExpr := "this." + f.Name
		if local {
			valueExpr = f.Name
		}
		write, err := WriteStmts(f.Type, valueExpr)
		if err != nil {
			return "", itemErr(item, err)
		}
		read, err := ReadExpr(f.Type)
		if err != nil {
			return "", itemErr(item, err)
		}
		parts = append(parts, fieldParts{surface: surface, size: size, write: write, read: read, local: local})
	}

	w := writer.NewWriter(indentUnit)
	if len(r.Fields) == 0 {
		w.WriteLinef("class %s {", r.Name)
	} else {
		w.WriteLinef("data class %s(", r.Name)
		w.Indent()
		for i, f := range r.Fields {
			w.WriteLinef("val %s: %s,", f.Name, parts[i].surface)
		}
		w.Dedent()
		w.WriteLine(") {")
	}
	w.Indent()

	w.WriteLine("internal fun serializeForRustSize(): Int {")
	w.Indent()
	if len(parts) == 0 {
		w.WriteLine("return 0")
	} else {
		sizes := make([]string, len(parts))
		for i := range parts {
			sizes[i] = parts[i].size
		}
		w.WriteLinef("return %s", strings.Join(sizes, " + "))
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("internal fun serializeForRustInto(buf: ByteBuffer) {")
	w.Indent()
	for i, f := range r.Fields {
		if parts[i].local {
			w.WriteLinef("val %s = this.%s", f.Name, f.Name)
		}
		w.WriteLines(parts[i].write)
	}
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("fun serializeForRust(): RustBuffer.ByValue {")
	w.Indent()
	w.WriteLine("return lowerIntoRustBuffer(serializeForRustSize()) { buf -> serializeForRustInto(buf) }")
	w.Dedent()
	w.WriteLine("}")
	w.BlankLine()

	w.WriteLine("companion object {")
	w.Indent()
	w.WriteLinef("internal fun deserializeItemFromRust(buf: ByteBuffer): %s {", r.Name)
	w.Indent()
	if len(parts) == 0 {
		w.WriteLinef("return %s()", r.Name)
	} else {
		w.WriteLinef("return %s(", r.Name)
		w.Indent()
		for i, f := range r.Fields {
			w.WriteLinef("%s = %s,", f.Name, parts[i].read)
		}
		w.Dedent()
		w.WriteLine(")")
	}
	w.Dedent()
	w.WriteLine("}")
	w.Dedent()
	w.WriteLine("}")

	w.Dedent()
	w.WriteLine("}")

	return w.String(), nil
}

// generateFunction renders one foreign-call declaration and its public
// wrapper: lower each argument, make exactly one native call, lift the
// result (or emit none for functions without a return).
func (g *Generator) generateFunction(model *schema.InterfaceModel, fn schema.FunctionDefinition) (string, string, error) {
	item := fmt.Sprintf("function %s", fn.Name)

	type loweredArg struct {
		name string
		expr string
	}

	surfaceArgs := make([]string, 0, len(fn.Arguments))
	callArgs := make([]string, 0, len(fn.Arguments))
	var binds []loweredArg
	for _, a := range fn.Arguments {
		if err := checkResolves(model, a.Type); err != nil {
			return "", "", itemErr(item, err)
		}
		surface, err := SurfaceType(a.Type)
		if err != nil {
			return "", "", itemErr(item, err)
		}
		surfaceArgs = append(surfaceArgs, fmt.Sprintf("%s: %s", a.Name, surface))

		lower, err := LowerExpr(a.Type, a.Name)
		if err != nil {
			return "", "", itemErr(item, err)
		}
		if lower == a.Name {
			callArgs = append(callArgs, a.Name)
		} else {
			bound := "_" + a.Name
			binds = append(binds, loweredArg{name: bound, expr: lower})
			callArgs = append(callArgs, bound)
		}
	}

	surfaceRet := ""
	liftExpr := ""
	if fn.Return != nil {
		if err := checkResolves(model, *fn.Return); err != nil {
			return "", "", itemErr(item, err)
		}
		surface, err := SurfaceType(*fn.Return)
		if err != nil {
			return "", "", itemErr(item, err)
		}
		surfaceRet = ": " + surface

		liftExpr, err = LiftExpr(*fn.Return, "_retval")
		if err != nil {
			return "", "", itemErr(item, err)
		}
	}

	sym := model.FFISymbolName(fn.Name)
	decl, err := ffiDecl(schema.ForeignFunction{Symbol: sym, Arguments: fn.Arguments, Return: fn.Return})
	if err != nil {
		return "", "", itemErr(item, err)
	}

	w := writer.NewWriter(indentUnit)
	w.WriteLinef("fun %s(%s)%s {", fn.Name, strings.Join(surfaceArgs, ", "), surfaceRet)
	w.Indent()
	for _, b := range binds {
		lines := strings.Split(b.expr, "\n")
		w.WriteLinef("val %s = %s", b.name, lines[0])
		w.WriteLines(lines[1:])
	}
	call := fmt.Sprintf("_FFILib.INSTANCE.%s(%s)", sym, strings.Join(callArgs, ", "))
	if fn.Return == nil {
		w.WriteLine(call)
	} else {
		w.WriteLinef("val _retval = %s", call)
		w.WriteLinef("return %s", liftExpr)
	}
	w.Dedent()
	w.WriteLine("}")

	return decl, w.String(), nil
}

// ffiDecl renders one foreign-call interface method from its derived
// definition.
func ffiDecl(f schema.ForeignFunction) (string, error) {
	args := make([]string, 0, len(f.Arguments))
	for _, a := range f.Arguments {
		t, err := FFIType(a.Type)
		if err != nil {
			return "", err
		}
		args = append(args, fmt.Sprintf("%s: %s", a.Name, t))
	}
	decl := fmt.Sprintf("fun %s(%s)", f.Symbol, strings.Join(args, ", "))
	if f.Return != nil {
		ret, err := FFIType(*f.Return)
		if err != nil {
			return "", err
		}
		decl += ": " + ret
	}
	return decl, nil
}

// checkResolves verifies every enum and record name reachable from t
// is defined in the model, so emitted references always have a
// declaration to land on.
func checkResolves(model *schema.InterfaceModel, t schema.TypeReference) error {
	switch t.Kind {
	case schema.KindEnum:
		if _, ok := model.FindEnum(t.Name); !ok {
			return fmt.Errorf("enum %s is not defined in the model", t.Name)
		}
	case schema.KindRecord:
		if _, ok := model.FindRecord(t.Name); !ok {
			return fmt.Errorf("record %s is not defined in the model", t.Name)
		}
	case schema.KindOptional:
		return checkResolves(model, *t.Inner)
	}
	return nil
}
