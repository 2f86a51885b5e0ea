package qtranspile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*([^()"]+?)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	threeQubitRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*\w+\[(\d+)\];?$`)
	resetRegex           = regexp.MustCompile(`^reset\s+q\[(\d+)\];?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
	cregRegex            = regexp.MustCompile(`creg\s+(\w+)\[(\d+)\]`)
	barrierRegex         = regexp.MustCompile(`^barrier\b`)
	barrierQubitRegex    = regexp.MustCompile(`q\[(\d+)\]`)
	pauliExtRegex        = regexp.MustCompile(`^(t_pauli|s_pauli|z_pauli|m_pauli)\s*\(\s*"([^"]*)"\s*\)(?:\s*->\s*\w+\[(\d+)\])?;?$`)
)

// singleGateKinds maps QASM mnemonics to single-qubit kinds.
var singleGateKinds = map[string]OpKind{
	"h": OpH, "x": OpX, "y": OpY, "z": OpZ,
	"s": OpS, "sdg": OpSDG, "t": OpT, "tdg": OpTDG,
	"sx": OpSX, "sxdg": OpSXDG,
}

// ParseQASM parses OpenQASM 2.0 text into a circuit. Gate macros are
// expected to already be resolved to primitive operations; the Pauli
// extension ops t_pauli/s_pauli/z_pauli/m_pauli are accepted in their
// documented textual form.
func ParseQASM(qasm string) (*Circuit, error) {
	numQubits, numCbits := 0, 0
	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if matches := qregRegex.FindStringSubmatch(line); matches != nil {
			n, _ := strconv.Atoi(matches[2])
			numQubits += n
		}
		if matches := cregRegex.FindStringSubmatch(line); matches != nil {
			n, _ := strconv.Atoi(matches[2])
			numCbits += n
		}
	}
	c := NewCircuit(numQubits, numCbits)

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") ||
			strings.HasPrefix(line, "qreg") || strings.HasPrefix(line, "creg") {
			continue
		}

		op, err := parseQASMLine(line, numQubits)
		if err != nil {
			return nil, err
		}
		if op == nil {
			continue
		}
		if err := c.Append(*op); err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}
	}
	return c, nil
}

func parseQASMLine(line string, numQubits int) (*Operation, error) {
	if barrierRegex.MatchString(line) {
		var qubits []int
		for _, m := range barrierQubitRegex.FindAllStringSubmatch(line, -1) {
			q, _ := strconv.Atoi(m[1])
			qubits = append(qubits, q)
		}
		op := NewBarrier(qubits...)
		return &op, nil
	}

	if matches := pauliExtRegex.FindStringSubmatch(line); matches != nil {
		pauli, err := ParsePauliOp(matches[2])
		if err != nil {
			return nil, err
		}
		if pauli.NumQubits() != numQubits {
			return nil, &MalformedInputError{Detail: fmt.Sprintf("pauli string %q length does not match qreg size %d", matches[2], numQubits)}
		}
		var kind OpKind
		switch matches[1] {
		case "t_pauli":
			kind = OpTPauli
		case "s_pauli":
			kind = OpSPauli
		case "z_pauli":
			kind = OpZPauli
		case "m_pauli":
			kind = OpMPauli
		}
		op := NewPauliOp(kind, pauli)
		if matches[3] != "" {
			op.Cbit, _ = strconv.Atoi(matches[3])
		}
		return &op, nil
	}

	if matches := measureRegex.FindStringSubmatch(line); matches != nil {
		q, _ := strconv.Atoi(matches[1])
		cbit, _ := strconv.Atoi(matches[2])
		op := NewMeasure(q, cbit)
		return &op, nil
	}

	if matches := resetRegex.FindStringSubmatch(line); matches != nil {
		q, _ := strconv.Atoi(matches[1])
		op := NewReset(q)
		return &op, nil
	}

	if matches := threeQubitRegex.FindStringSubmatch(line); matches != nil {
		name := strings.ToLower(matches[1])
		a, _ := strconv.Atoi(matches[2])
		b, _ := strconv.Atoi(matches[3])
		t, _ := strconv.Atoi(matches[4])
		if name != "ccx" && name != "toffoli" {
			return nil, &MalformedInputError{Detail: fmt.Sprintf("unknown three-qubit gate %q", name)}
		}
		op := NewGate(OpCCX, a, b, t)
		return &op, nil
	}

	if matches := twoQubitRegex.FindStringSubmatch(line); matches != nil {
		name := strings.ToLower(matches[1])
		a, _ := strconv.Atoi(matches[2])
		b, _ := strconv.Atoi(matches[3])
		var kind OpKind
		switch name {
		case "cx", "cnot":
			kind = OpCX
		case "cz":
			kind = OpCZ
		case "swap":
			kind = OpSWAP
		default:
			return nil, &MalformedInputError{Detail: fmt.Sprintf("unknown two-qubit gate %q", name)}
		}
		op := NewGate(kind, a, b)
		return &op, nil
	}

	if matches := singleGateParamRegex.FindStringSubmatch(line); matches != nil {
		name := strings.ToLower(matches[1])
		theta, ok := parseAngle(matches[2])
		if !ok {
			return nil, &MalformedInputError{Detail: fmt.Sprintf("invalid parameter %q", matches[2])}
		}
		q, _ := strconv.Atoi(matches[3])
		var kind OpKind
		switch name {
		case "rx":
			kind = OpRX
		case "ry":
			kind = OpRY
		case "rz", "p", "u1":
			kind = OpRZ
		default:
			return nil, &MalformedInputError{Detail: fmt.Sprintf("unknown parameterized gate %q", name)}
		}
		op := NewRotation(kind, theta, q)
		return &op, nil
	}

	if matches := singleGateRegex.FindStringSubmatch(line); matches != nil {
		name := strings.ToLower(matches[1])
		q, _ := strconv.Atoi(matches[2])
		kind, ok := singleGateKinds[name]
		if !ok {
			return nil, &MalformedInputError{Detail: fmt.Sprintf("unknown gate %q", name)}
		}
		op := NewGate(kind, q)
		return &op, nil
	}

	return nil, &MalformedInputError{Detail: fmt.Sprintf("unparseable statement %q", line)}
}

// WriteQASM generates OpenQASM 2.0 output for the circuit. Pauli-based
// operations use the extension forms t_pauli("+XIZ") etc.
func WriteQASM(c *Circuit) string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", max(c.NumQubits, 1))
	fmt.Fprintf(&sb, "creg c[%d];\n\n", max(c.NumCbits, 1))

	for _, op := range c.Ops {
		switch {
		case op.Kind == OpBarrier:
			qubits := op.Qubits
			if len(qubits) == 0 {
				qubits = allQubits(c.NumQubits)
			}
			parts := make([]string, len(qubits))
			for i, q := range qubits {
				parts[i] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "barrier %s;\n", strings.Join(parts, ", "))
		case op.Kind == OpMeasure:
			fmt.Fprintf(&sb, "measure q[%d] -> c[%d];\n", op.Qubits[0], op.Cbit)
		case op.Kind == OpMPauli && op.Cbit >= 0:
			fmt.Fprintf(&sb, "m_pauli(%q) -> c[%d];\n", op.Pauli.String(), op.Cbit)
		case op.IsPauliBased():
			fmt.Fprintf(&sb, "%s(%q);\n", op.Kind, op.Pauli.String())
		case op.IsRotation():
			fmt.Fprintf(&sb, "%s(%s) q[%d];\n", op.Kind, formatAngle(op.Theta), op.Qubits[0])
		default:
			parts := make([]string, len(op.Qubits))
			for i, q := range op.Qubits {
				parts[i] = fmt.Sprintf("q[%d]", q)
			}
			fmt.Fprintf(&sb, "%s %s;\n", op.Kind, strings.Join(parts, ", "))
		}
	}
	return sb.String()
}
