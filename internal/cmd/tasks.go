package cmd

import (
	"github.com/spf13/cobra"

	"github.com/staffdesk/staffdesk/internal/forms"
	"github.com/staffdesk/staffdesk/internal/router"
	"github.com/staffdesk/staffdesk/internal/session"
	"github.com/staffdesk/staffdesk/internal/views"
)

// Messages printed by the task commands.
const (
	TaskCreatedMessage = "Task created successfully!"
	TaskUpdatedMessage = "Task status updated successfully!"
)

func newTasksCommand(app *App) *cobra.Command {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Create, list and update tasks (employee, admin)",
		Long: `Manage tasks.

Employees see the tasks assigned to them or created by them. Administrators
see every task.`,
	}
	tasksCmd.AddCommand(
		newTasksListCommand(app),
		newTasksShowCommand(app),
		newTasksCreateCommand(app),
		newTasksStatusCommand(app),
	)
	return tasksCmd
}

func newTasksListCommand(app *App) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks.

Filters:
  all       tasks assigned to or created by you (every task for admins)
  assigned  tasks assigned to you
  created   tasks you created

Examples:
  staffdesk tasks list --filter assigned
  staffdesk tasks list -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := forms.ParseTaskFilter(filter)
			if err != nil {
				return err
			}
			tasks, err := views.LoadTasks(app.ctx(cmd), app.Client, app.Session.Snapshot(), f)
			if err != nil {
				return err
			}
			return app.render(cmd, views.Tasks(tasks))
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all, assigned or created")
	return withView(cmd, router.ViewTaskList)
}

func newTasksShowCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task id")
			if err != nil {
				return err
			}
			task, err := app.Client.GetTask(app.ctx(cmd), id)
			if err != nil {
				return err
			}
			return app.render(cmd, views.Task(task))
		},
	}
	return withView(cmd, router.ViewTaskList)
}

func newTasksCreateCommand(app *App) *cobra.Command {
	var (
		f        forms.Task
		assignee int64
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create and assign a task",
		Long: `Create a task and assign it to an employee.

Priority defaults to MEDIUM and new tasks start PENDING. In a terminal the
assignee is picked from the employee list when --assignee is omitted.

Examples:
  staffdesk tasks create --title "Count stock" --assignee 2 --due 2026-03-01 --priority HIGH`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := pickEmployee(app, cmd, session.UserID(assignee), "assign the task to")
			if err != nil {
				return err
			}
			f.AssigneeID = id
			if err := f.Validate(); err != nil {
				return err
			}

			task, err := app.Client.CreateTask(app.ctx(cmd), f.Payload(), app.Session.UserID(), f.AssigneeID)
			if err != nil {
				return err
			}
			app.say(cmd, TaskCreatedMessage)
			return app.render(cmd, views.Task(task))
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.Title, "title", "", "task title")
	flags.StringVar(&f.Description, "description", "", "task description")
	flags.StringVar(&f.DueDate, "due", "", "due date, YYYY-MM-DD")
	flags.StringVar(&f.Priority, "priority", "MEDIUM", "LOW, MEDIUM or HIGH")
	flags.Int64Var(&assignee, "assignee", 0, "employee user id")
	return withView(cmd, router.ViewTaskCreate)
}

func newTasksStatusCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change the status of a task",
		Long: `Change the status of a task to PENDING, IN_PROGRESS, COMPLETED or CANCELLED.

Examples:
  staffdesk tasks status 12 IN_PROGRESS`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "task id")
			if err != nil {
				return err
			}
			status, err := forms.ParseTaskStatus(args[1])
			if err != nil {
				return err
			}
			task, err := app.Client.UpdateTaskStatus(app.ctx(cmd), id, status)
			if err != nil {
				return err
			}
			app.say(cmd, TaskUpdatedMessage)
			return app.render(cmd, views.Task(task))
		},
	}
	return withView(cmd, router.ViewTaskStatus)
}
