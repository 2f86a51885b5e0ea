package qtranspile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePauliOpRoundTrip(t *testing.T) {
	for _, s := range []string{"+XIZ", "-YYI", "+IIII", "-Z", "+XYZI"} {
		p, err := ParsePauliOp(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, p.String())
	}
}

func TestParsePauliOpRejectsMalformed(t *testing.T) {
	for _, s := range []string{"", "X", "XIZ", "+XQZ", "+", "*XX"} {
		_, err := ParsePauliOp(s)
		assert.Error(t, err, "expected rejection of %q", s)
		if err != nil {
			var malformed *MalformedInputError
			assert.ErrorAs(t, err, &malformed)
		}
	}
}

func TestCommutesWith(t *testing.T) {
	cases := []struct {
		a, b     string
		commutes bool
	}{
		{"+XI", "+IX", true},
		{"+XI", "+ZI", false},
		{"+XX", "+ZZ", true},
		{"+XY", "+ZZ", true},
		{"+YI", "+YI", true},
		{"+XYZ", "+ZYX", true},
		{"+III", "+XYZ", true},
	}
	for _, tc := range cases {
		a, err := ParsePauliOp(tc.a)
		require.NoError(t, err)
		b, err := ParsePauliOp(tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.commutes, a.CommutesWith(b), "%s vs %s", tc.a, tc.b)
		assert.Equal(t, tc.commutes, b.CommutesWith(a), "%s vs %s reversed", tc.b, tc.a)
	}
}

func TestMultiplySingleQubitTable(t *testing.T) {
	// X*Y = iZ, Y*X = -iZ, Y*Z = iX, Z*Y = -iX, Z*X = iY, X*Z = -iY.
	cases := []struct {
		a, b, want string
		exp        int
	}{
		{"+X", "+Y", "+Z", 1},
		{"+Y", "+X", "+Z", 3},
		{"+Y", "+Z", "+X", 1},
		{"+Z", "+Y", "+X", 3},
		{"+Z", "+X", "+Y", 1},
		{"+X", "+Z", "+Y", 3},
		{"+X", "+X", "+I", 0},
		{"-X", "+X", "-I", 0},
	}
	for _, tc := range cases {
		a, _ := ParsePauliOp(tc.a)
		b, _ := ParsePauliOp(tc.b)
		r, exp := a.Multiply(b)
		assert.Equal(t, tc.want, r.String(), "%s * %s", tc.a, tc.b)
		assert.Equal(t, tc.exp, exp, "%s * %s phase", tc.a, tc.b)
	}
}

func TestMultiplyRandomInverse(t *testing.T) {
	// (P*Q)*Q recovers P up to sign for random strings of length <= 8.
	rng := rand.New(rand.NewSource(7))
	letters := []byte{'I', 'X', 'Y', 'Z'}
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(8)
		mk := func() PauliOp {
			buf := make([]byte, n+1)
			buf[0] = '+'
			if rng.Intn(2) == 1 {
				buf[0] = '-'
			}
			for i := 1; i <= n; i++ {
				buf[i] = letters[rng.Intn(4)]
			}
			p, err := ParsePauliOp(string(buf))
			require.NoError(t, err)
			return p
		}
		p, q := mk(), mk()
		pq, _ := p.Multiply(q)
		back, _ := pq.Multiply(q)
		assert.True(t, back.EqualUpToSign(p), "((%s*%s)*%s) = %s", p, q, q, back)
	}
}

func TestCommutationMatchesMultiplyOrder(t *testing.T) {
	// P and Q commute exactly when P*Q and Q*P carry the same phase.
	rng := rand.New(rand.NewSource(11))
	letters := []byte{'I', 'X', 'Y', 'Z'}
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(6)
		mk := func() PauliOp {
			buf := make([]byte, n+1)
			buf[0] = '+'
			for i := 1; i <= n; i++ {
				buf[i] = letters[rng.Intn(4)]
			}
			p, _ := ParsePauliOp(string(buf))
			return p
		}
		p, q := mk(), mk()
		pq, e1 := p.Multiply(q)
		qp, e2 := q.Multiply(p)
		require.True(t, pq.EqualUpToSign(qp))
		same := e1 == e2 && pq.Negative() == qp.Negative()
		assert.Equal(t, p.CommutesWith(q), same, "%s vs %s", p, q)
	}
}

func TestConjugateByGateTable(t *testing.T) {
	cases := []struct {
		gate   OpKind
		qubits []int
		in     string
		want   string
	}{
		{OpH, []int{0}, "+XI", "+ZI"},
		{OpH, []int{0}, "+ZI", "+XI"},
		{OpH, []int{0}, "+YI", "-YI"},
		{OpS, []int{0}, "+XI", "+YI"},
		{OpS, []int{0}, "+YI", "-XI"},
		{OpSDG, []int{0}, "+XI", "-YI"},
		{OpSX, []int{0}, "+ZI", "-YI"},
		{OpSX, []int{0}, "+YI", "+ZI"},
		{OpX, []int{0}, "+ZI", "-ZI"},
		{OpZ, []int{0}, "+XI", "-XI"},
		{OpCX, []int{0, 1}, "+XI", "+XX"},
		{OpCX, []int{0, 1}, "+IZ", "+ZZ"},
		{OpCX, []int{0, 1}, "+ZI", "+ZI"},
		{OpCX, []int{0, 1}, "+IX", "+IX"},
		{OpCX, []int{0, 1}, "+YY", "-XZ"},
		{OpCZ, []int{0, 1}, "+XI", "+XZ"},
		{OpCZ, []int{0, 1}, "+XX", "+YY"},
		{OpSWAP, []int{0, 1}, "+XZ", "+ZX"},
	}
	for _, tc := range cases {
		p, err := ParsePauliOp(tc.in)
		require.NoError(t, err)
		got, err := p.ConjugateBy(NewGate(tc.gate, tc.qubits...))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got.String(), "%s %v on %s", tc.gate, tc.qubits, tc.in)
	}
}

func TestConjugateByRejectsNonClifford(t *testing.T) {
	p, _ := ParsePauliOp("+X")
	_, err := p.ConjugateBy(NewGate(OpT, 0))
	var violation *InvariantViolationError
	require.ErrorAs(t, err, &violation)
}
