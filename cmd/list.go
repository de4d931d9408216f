package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"inpatient-registration/cmd/bootstrap"
	"inpatient-registration/internal/delivery/dto"
	"inpatient-registration/internal/domain/entity"
	"inpatient-registration/internal/registry"
	"inpatient-registration/internal/usecase"

	"github.com/spf13/cobra"
)

type listOptions struct {
	search string
	room   string
	sort   string
	order  string
	page   int
	limit  int
	all    bool
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the inpatient list from the patient store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.NewCLI()
			if err != nil {
				return err
			}
			defer app.Close()

			if opts.limit <= 0 {
				opts.limit = app.Config.Registry.PageSize
			}

			patientUsecase := usecase.NewPatientUsecase(app.Log, app.Registry, app.Store, nil)

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Config.Store.LoadTimeout)
			defer cancel()
			if _, err := patientUsecase.LoadRegistry(ctx); err != nil {
				return fmt.Errorf("failed to load patients: %w", err)
			}

			return runList(cmd.Context(), cmd.OutOrStdout(), patientUsecase, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.search, "search", "", "filter by name or NIK")
	flags.StringVar(&opts.room, "room", entity.RoomFilterAll, "filter by exact room name")
	flags.StringVar(&opts.sort, "sort", "", "sort field: nama, tanggal_masuk, ruangan, dokter_penanggung_jawab")
	flags.StringVar(&opts.order, "order", "", "sort order: asc or desc")
	flags.IntVar(&opts.page, "page", 1, "page to print")
	flags.IntVar(&opts.limit, "limit", 0, "rows per page (defaults to REGISTRY_PAGE_SIZE)")
	flags.BoolVar(&opts.all, "all", false, "print every page")

	return cmd
}

func (o listOptions) cursor() (*registry.ListCursor, error) {
	cursor := registry.NewListCursor(o.limit)
	cursor.SetSearch(o.search)
	cursor.SetRoom(o.room)

	if o.sort == "" && o.order == "" {
		return cursor, nil
	}

	field := entity.SortByTanggalMasuk
	if o.sort != "" {
		f, ok := entity.ParseSortField(o.sort)
		if !ok {
			return nil, fmt.Errorf("unknown sort field %q", o.sort)
		}
		field = f
	}

	dir := entity.SortAsc
	if o.order != "" {
		d, ok := entity.ParseSortDirection(o.order)
		if !ok {
			return nil, fmt.Errorf("unknown sort order %q", o.order)
		}
		dir = d
	}

	cursor.SortBy(field, dir)
	return cursor, nil
}

func runList(ctx context.Context, out io.Writer, patientUsecase usecase.PatientUsecase, opts listOptions) error {
	cursor, err := opts.cursor()
	if err != nil {
		return err
	}

	result, err := patientUsecase.ListPatients(ctx, cursor.Query())
	if err != nil {
		return err
	}

	if opts.page != 1 {
		cursor.GoTo(opts.page, result.TotalPages)
		if result, err = patientUsecase.ListPatients(ctx, cursor.Query()); err != nil {
			return err
		}
	}

	for {
		if err := printPage(out, result); err != nil {
			return err
		}
		if !opts.all || !cursor.Next(result.TotalPages) {
			return nil
		}
		if result, err = patientUsecase.ListPatients(ctx, cursor.Query()); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
}

func printPage(out io.Writer, result *dto.PatientListResponse) error {
	if result.Total == 0 {
		_, err := fmt.Fprintln(out, "Tidak ada data pasien")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NO\tNAMA\tNIK\tDIAGNOSA\tTANGGAL MASUK\tDOKTER\tRUANGAN")

	offset := (result.Page - 1) * result.Limit
	for i, p := range result.Patients {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			offset+i+1, p.Nama, p.NIK, p.Diagnosa, p.TanggalMasukDisplay, p.DokterPenanggungJawab, p.Ruangan)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "Menampilkan %d dari %d pasien (terdaftar %d), halaman %d/%d\n",
		len(result.Patients), result.Total, result.Registered, result.Page, result.TotalPages)
	return err
}
