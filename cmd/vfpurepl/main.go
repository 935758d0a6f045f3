// Command vfpurepl is an interactive stepper over a vfpu.Machine: print
// state, offer a menu of single-letter commands, read one, repeat. It
// inspects the register cube, the pending prefixes, and the control
// registers.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pspgo/vfpu/regfile"
	"github.com/pspgo/vfpu/rngsrc"
	"github.com/pspgo/vfpu/vfpu"
)

var (
	verbose bool
	seed    uint32
	logger  = logrus.StandardLogger()
)

func main() {
	root := &cobra.Command{
		Use:   "vfpurepl",
		Short: "Interactively inspect and step a VFPU register cube.",
		Run:   runREPL,
	}
	flags := pflag.NewFlagSet("vfpurepl", pflag.ExitOnError)
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.Uint32Var(&seed, "seed", 1, "seed the RNG source (vrnds/vrndi/vrndf1/vrndf2) before starting")
	root.PersistentFlags().AddFlagSet(flags)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runREPL(cmd *cobra.Command, args []string) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	rng := rngsrc.Default()
	rng.Seed(seed)
	vm := vfpu.New(vfpu.WithLogger(logger), vfpu.WithRNG(rng))
	repl(vm)
}

func readFloat(prompt string) float32 {
	var f float32
	fmt.Print(prompt)
	fmt.Scanf("%f\n", &f)
	return f
}

func readReg(prompt string) int {
	var r int
	fmt.Print(prompt)
	fmt.Scanf("%d\n", &r)
	return r
}

func repl(vm *vfpu.Machine) {
	for {
		fmt.Printf("\nS=%#x T=%#x D=%#x CC=%#x\n", vm.Prefix.S.Raw(), vm.Prefix.T.Raw(), vm.Prefix.D.Raw(), vm.Ctrl.Get(3))
		fmt.Println("(D)ump - show a register's Quad lanes")
		fmt.Println("(W)rite - poke a Single register")
		fmt.Println("(A)dd - vadd.q two Quad registers into a third")
		fmt.Println("(I)dentity - load a 4x4 identity matrix")
		fmt.Println("(Q)uit")
		fmt.Print("Choice: ")

		var in rune
		if _, err := fmt.Scanf("%c\n", &in); err != nil {
			return
		}

		switch in {
		case 'q', 'Q':
			return
		case 'd', 'D':
			reg := readReg("Register (quad-aligned index, eg 0, 4, 8): ")
			v := make([]float32, 4)
			vm.Regs.ReadVector(v, regfile.Quad, reg)
			fmt.Printf("vd%d = %v\n", reg, v)
		case 'w', 'W':
			reg := readReg("Register: ")
			val := readFloat("Value: ")
			vm.Regs.WriteScalar(reg, val)
		case 'a', 'A':
			a := readReg("First Quad register: ")
			b := readReg("Second Quad register: ")
			d := readReg("Destination Quad register: ")
			vm.VecDo3(vfpu.Vadd, regfile.Quad, d, a, b)
		case 'i', 'I':
			reg := readReg("Destination matrix register: ")
			vm.VMidt(regfile.M4x4, reg)
		}
	}
}
