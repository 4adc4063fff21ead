package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"babymenu/internal/calendar"
)

var childCmd = &cobra.Command{
	Use:   "child",
	Short: "Manage children",
}

var childAddCmd = &cobra.Command{
	Use:   "add NAME boy|girl YYYY-MM-DD",
	Short: "Add a child and select it",
	Args:  cobra.ExactArgs(3),
	Run:   runChildAdd,
}

var childListCmd = &cobra.Command{
	Use:   "list",
	Short: "List children",
	Args:  cobra.NoArgs,
	Run:   runChildList,
}

var childSelectCmd = &cobra.Command{
	Use:   "select CHILD",
	Short: "Select the child later commands act on",
	Args:  cobra.ExactArgs(1),
	Run:   runChildSelect,
}

var childRemoveCmd = &cobra.Command{
	Use:   "remove CHILD",
	Short: "Remove a child with its foods, picks and history",
	Args:  cobra.ExactArgs(1),
	Run:   runChildRemove,
}

func init() {
	childCmd.AddCommand(childAddCmd, childListCmd, childSelectCmd, childRemoveCmd)
	rootCmd.AddCommand(childCmd)
}

func runChildAdd(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()

	child, err := a.Service.AddChild(newContext(), args[0], args[1], args[2])
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s), now selected.\n", child.Name, calendar.FormatAge(a.Service.AgeInMonths(child)))
}

func runChildList(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()

	children, err := a.Service.Children(newContext())
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatChildren(children, a.Service.Session().ChildID, a.Service.AgeInMonths))
}

func runChildSelect(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()

	children, err := a.Service.Children(ctx)
	if err != nil {
		fatalf("%v", err)
	}
	c, ok := findChild(children, args[0])
	if !ok {
		fatalf("no child matches %q", args[0])
	}
	if _, err := a.Service.SelectChild(ctx, c.ID); err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Selected %s.\n", c.Name)
}

func runChildRemove(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()

	children, err := a.Service.Children(ctx)
	if err != nil {
		fatalf("%v", err)
	}
	c, ok := findChild(children, args[0])
	if !ok {
		fatalf("no child matches %q", args[0])
	}
	if !confirmer(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Remove %s and all their data?", c.Name))() {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return
	}
	if err := a.Service.RemoveChild(ctx, c.ID); err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", c.Name)
}
