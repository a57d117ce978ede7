package compiler

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tlog.app/go/errors"
)

func TestCompileScenarios(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
		exit int
	}{
		{"ret42", "main(){return 42;}", 42},
		{"precedence", "main(){a=3;b=5;return a+b*2;}", 13},
		{"for", "main(){i=0;j=0;for(i=0;i<5;i=i+1){j=j+i;}return j;}", 10},
		{"deref", "main(){x=3;y=&x;return *y;}", 3},
		{"call", "f(a,b){return a+b;}main(){return f(2,3);}", 5},

		{"sub", "main(){return 5+20-4;}", 21},
		{"mul", "main(){return 5+6*7;}", 47},
		{"parens", "main(){return 5*(9-6);}", 15},
		{"div", "main(){return (3+5)/2;}", 4},
		{"neg", "main(){return (-3*+4)/-2;}", 6},
		{"negneg", "main(){return - -+10;}", 10},
		{"eq", "main(){return 42==42;}", 1},
		{"ne", "main(){return 42!=42;}", 0},
		{"lt", "main(){return 1<1;}", 0},
		{"le", "main(){return 1<=1;}", 1},
		{"gt", "main(){return 1>0;}", 1},
		{"ge", "main(){return 1>=2;}", 0},
		{"chain", "main(){a=b=3;return a+b;}", 6},
		{"if", "main(){a=0;if(a)return 2;else return 3;}", 3},
		{"while", "main(){i=0;while(i<10)i=i+1;return i;}", 10},
		{"for_empty", "main(){i=0;for(;;){i=i+1;if(i==7)return i;}}", 7},
		{"addr_deref", "main(){x=3;return *&x;}", 3},
		{"store_through", "main(){x=3;y=&x;*y=9;return x;}", 9},
		{"ptr_arith", "main(){x=3;y=5;p=&y;return *(p+1);}", 3},
		{"ptr_arith_rev", "main(){x=3;y=5;p=&y;return *(1+p);}", 3},
		{"ptr_back", "main(){x=3;y=5;p=&x;return *(p-1);}", 5},
		{"ptr_ptr", "main(){x=3;y=&x;z=&y;**z=4;return x;}", 4},
		{"args6", "f(a,b,c,d,e,g){return a-b+c-d+e-g;}main(){return f(6,5,4,3,2,1);}", 3},
		{"fib", "fib(n){if(n<2)return n;return fib(n-1)+fib(n-2);}main(){return fib(10);}", 55},
		{"nested_call", "f(a){return a*2;}main(){return 1+f(1+f(3));}", 15},
		{"func_named_rax", "rax(){return 7;}main(){return rax();}", 7},
		{"func_named_di", "di(a){return a+1;}main(){return di(6);}", 7},
		{"func_named_offset", "offset(){return 3;}ptr(){return offset()+1;}main(){return ptr();}", 4},
		{"no_return", "f(){x=1;}main(){f();return 2;}", 2},
	} {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			obj, err := Compile(context.Background(), tc.name, []byte(tc.text))
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(string(obj), "\t.intel_syntax noprefix\n"))

			assert.Equal(t, tc.exit, run(t, obj))
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		text string
		diag string
	}{
		{"stray_char", "main(){return 1@2;}", "main(){return 1@2;}\n               ^ cannot tokenize"},
		{"undefined", "main(){return a;}", "main(){return a;}\n              ^ undefined variable: a"},
		{"second_line", "main(){\n\tx=1;\n\treturn *x;\n}", "\treturn *x;\n\t       ^ not a pointer: int"},
		{"big_number", "main(){return 70000;}", "main(){return 70000;}\n              ^ number out of range: 70000"},
	} {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			text := []byte(tc.text)

			obj, err := Compile(context.Background(), tc.name, text)
			require.Error(t, err)
			assert.Nil(t, obj)

			assert.Equal(t, tc.diag, Diagnose(text, err))
		})
	}
}

func TestDiagnoseNoPosition(t *testing.T) {
	err := errors.New("read file: no such file")

	assert.Equal(t, "read file: no such file", Diagnose(nil, err))
}

func TestCompileFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "a.c")

	err := os.WriteFile(name, []byte("main(){return 42;}\n"), 0o644)
	require.NoError(t, err)

	obj, err := CompileFile(context.Background(), name)
	require.NoError(t, err)
	assert.Contains(t, string(obj), "\tpush\t42\n")

	_, err = CompileFile(context.Background(), filepath.Join(t.TempDir(), "missing.c"))
	assert.Error(t, err)
}

// run assembles obj with the system toolchain and returns the exit code.
func run(t *testing.T, obj []byte) int {
	t.Helper()

	if runtime.GOOS != "linux" || runtime.GOARCH != "amd64" {
		t.Skipf("can't run x86-64 linux code on %v/%v", runtime.GOOS, runtime.GOARCH)
	}

	cc, err := exec.LookPath("cc")
	if err != nil {
		t.Skipf("no cc: %v", err)
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "a.s")
	exe := filepath.Join(dir, "a.out")

	err = os.WriteFile(src, obj, 0o644)
	require.NoError(t, err)

	out, err := exec.Command(cc, "-o", exe, src).CombinedOutput()
	require.NoError(t, err, "cc: %s\n%s", out, obj)

	err = exec.Command(exe).Run()

	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}

	require.NoError(t, err)

	return 0
}
