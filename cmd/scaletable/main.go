// Command scaletable prints the learning rate and weight decay that every parameter of a model gets,
// given a JSON description of the model (see unitscaling.Config). The learning rates are those at
// the given iteration of the Config's schedule.
//
// Usage:
//
//	scaletable -config model.json [-batch] [-iter n]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	us "github.com/EIFY/unit-scaling"
	_ "github.com/EIFY/unit-scaling/depthlaws"
	_ "github.com/EIFY/unit-scaling/scalefuncs"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("scaletable: ")

	path := flag.String("config", "", "path to the JSON model description")
	batch := flag.Bool("batch", false, "merge parameters with identical values into one group")
	iter := flag.Int("iter", 0, "training iteration at which to evaluate the learning rate schedule")
	flag.Parse()

	if *path == "" || *iter < 0 {
		flag.Usage()
		os.Exit(2)
	}

	c, err := us.LoadConfig(*path)
	if err != nil {
		log.Fatal(err)
	}

	params, args, err := c.Args()
	if err != nil {
		log.Fatal(err)
	}

	sched, err := c.LRSchedule()
	if err != nil {
		log.Fatal(err)
	}
	args.Log = log.Default()

	groups, err := us.BuildGroups(params, args)
	if err != nil {
		log.Fatal(err)
	}

	if *batch {
		groups = us.Batch(groups)
	}

	factor := sched.Value(*iter)
	if factor != 1 {
		log.Printf("Learning rates at iteration %d of %s (factor %g)", *iter, sched, factor)
	}

	if err = printTable(os.Stdout, groups, factor); err != nil {
		log.Fatal(err)
	}
}

// printTable writes one row per parameter, with every learning rate multiplied by factor.
func printTable(w io.Writer, groups []us.Group, factor float64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "group\tname\trole\tshape\tdepth\tmult\tlr\twd")
	for i, g := range groups {
		for _, p := range g.Params() {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%v\t%d\t%.6g\t%.6g\t%.6g\n",
				i, p.Name(), p.Role(), p.Shape(), p.Depth(), g.Multiplier(), g.LR()*factor, g.WeightDecay())
		}
	}

	return tw.Flush()
}
