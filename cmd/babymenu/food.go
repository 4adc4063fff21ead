package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the child's food catalog",
}

var foodAddCmd = &cobra.Command{
	Use:   "add CATEGORY NAME...",
	Short: "Append a food to the rotation",
	Long: `Append a food to the end of the rotation.

Categories: fruits, vegetables, grains, proteins, dairy, other. Each has a
minimum introduction age. When the week has manual picks you are asked
whether to recalculate the rest of the week.

Examples:
  babymenu food add fruits Banana
  babymenu food add vegetables Sweet potato --yes`,
	Args: cobra.MinimumNArgs(2),
	Run:  runFoodAdd,
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog in rotation order",
	Args:  cobra.NoArgs,
	Run:   runFoodList,
}

var foodRemoveCmd = &cobra.Command{
	Use:   "remove NAME...",
	Short: "Remove a food from the rotation",
	Args:  cobra.MinimumNArgs(1),
	Run:   runFoodRemove,
}

func init() {
	foodCmd.AddCommand(foodAddCmd, foodListCmd, foodRemoveCmd)
	rootCmd.AddCommand(foodCmd)
}

func runFoodAdd(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	category, err := a.Service.Categories().Parse(args[0])
	if err != nil {
		fatalf("%v", err)
	}
	name := strings.Join(args[1:], " ")

	recalculated, err := a.Service.AddFood(ctx, child.ID, name, category,
		confirmer(cmd.InOrStdin(), cmd.OutOrStdout(), recalcQuestion))
	if err != nil {
		fatalf("%v", err)
	}
	info := a.Service.Categories().Info(category)
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s) for %s.\n", info.Icon, name, info.Name, child.Name)
	if recalculated {
		fmt.Fprintln(cmd.OutOrStdout(), "The rest of the week was recalculated.")
	}
}

func runFoodList(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)

	foods, err := a.Service.Foods(ctx, child.ID)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatFoods(foods, a.Service.Categories()))
}

func runFoodRemove(cmd *cobra.Command, args []string) {
	a := mustGetApp()
	defer a.Close()
	ctx := newContext()
	child := mustGetChild(ctx, a.Service)
	name := strings.Join(args, " ")

	recalculated, err := a.Service.RemoveFood(ctx, child.ID, name,
		confirmer(cmd.InOrStdin(), cmd.OutOrStdout(), recalcQuestion))
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", name)
	if recalculated {
		fmt.Fprintln(cmd.OutOrStdout(), "The rest of the week was recalculated.")
	}
}
