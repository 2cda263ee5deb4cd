package claimform

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *repoPG) ClaimFormType(ctx context.Context, irn int64) (claims.FormType, error) {
	var count int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM form4_master WHERE irn = $1`, irn).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return claims.Form4, nil
	}
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM form3_master WHERE irn = $1`, irn).Scan(&count); err != nil {
		return "", err
	}
	if count > 0 {
		return claims.Form3, nil
	}
	return claims.Form11, nil
}

func (r *repoPG) LoadWorker(ctx context.Context, workerID int64) (*WorkerDetails, error) {
	var w WorkerDetails
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT first_name, last_name, dob, gender, marital_status, phone, email,
		        address1, address2, city, province, po_box,
		        spouse_first_name, spouse_last_name, spouse_dob,
		        spouse_address1, spouse_city, spouse_province
		   FROM worker WHERE worker_id = $1`, workerID).Scan(
		&w.FirstName, &w.LastName, &w.DOB, &w.Gender, &w.MaritalStatus, &w.Phone, &w.Email,
		&w.Address1, &w.Address2, &w.City, &w.Province, &w.POBox,
		&w.SpouseFirstName, &w.SpouseLastName, &w.SpouseDOB,
		&w.SpouseAddress1, &w.SpouseCity, &w.SpouseProvince)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, claims.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repoPG) UpdateWorker(ctx context.Context, workerID int64, w *WorkerDetails) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE worker
		    SET first_name = $2, last_name = $3, dob = $4, gender = $5,
		        marital_status = $6, phone = $7, email = $8,
		        address1 = $9, address2 = $10, city = $11, province = $12, po_box = $13,
		        spouse_first_name = $14, spouse_last_name = $15, spouse_dob = $16,
		        spouse_address1 = $17, spouse_city = $18, spouse_province = $19
		  WHERE worker_id = $1`,
		workerID, w.FirstName, w.LastName, w.DOB, w.Gender,
		w.MaritalStatus, w.Phone, w.Email,
		w.Address1, w.Address2, w.City, w.Province, w.POBox,
		w.SpouseFirstName, w.SpouseLastName, w.SpouseDOB,
		w.SpouseAddress1, w.SpouseCity, w.SpouseProvince)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return claims.ErrMissingRow
	}
	return nil
}

func (r *repoPG) LoadIncident(ctx context.Context, irn int64) (*IncidentDetails, error) {
	var inc IncidentDetails
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT incident_date, incident_location, incident_province, incident_region,
		        nature_of_injury, cause_of_injury, insurer_code, scan_path
		   FROM form11_master WHERE irn = $1`, irn).Scan(
		&inc.IncidentDate, &inc.IncidentLocation, &inc.IncidentProvince, &inc.IncidentRegion,
		&inc.NatureOfInjury, &inc.CauseOfInjury, &inc.InsurerCode, &inc.ScanPath)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, claims.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inc, nil
}

func (r *repoPG) UpdateIncident(ctx context.Context, irn int64, inc *IncidentDetails) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE form11_master
		    SET incident_date = $2, incident_location = $3, incident_province = $4,
		        incident_region = $5, nature_of_injury = $6, cause_of_injury = $7,
		        insurer_code = $8, scan_path = $9
		  WHERE irn = $1`,
		irn, inc.IncidentDate, inc.IncidentLocation, inc.IncidentProvince,
		inc.IncidentRegion, inc.NatureOfInjury, inc.CauseOfInjury,
		inc.InsurerCode, inc.ScanPath)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return claims.ErrMissingRow
	}
	return nil
}

func (r *repoPG) FormMasterExists(ctx context.Context, irn int64, formType claims.FormType) (bool, error) {
	table, err := masterTable(formType)
	if err != nil {
		return false, err
	}
	var count int
	err = r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE irn = $1`, irn).Scan(&count)
	return count > 0, err
}

func (r *repoPG) LoadFormMaster(ctx context.Context, irn int64, d *Draft) error {
	switch d.FormType {
	case claims.Form3:
		f := &Form3Details{}
		err := r.conn(ctx).QueryRow(ctx,
			`SELECT applicant_first_name, applicant_last_name, applicant_address1,
			        applicant_city, applicant_province, applicant_phone, applicant_email,
			        average_weekly_wage, compensation_claimed,
			        incapacity_extent, incapacity_description, submission_date
			   FROM form3_master WHERE irn = $1`, irn).Scan(
			&d.Applicant.FirstName, &d.Applicant.LastName, &d.Applicant.Address1,
			&d.Applicant.City, &d.Applicant.Province, &d.Applicant.Phone, &d.Applicant.Email,
			&f.AverageWeeklyWage, &f.CompensationClaimed,
			&f.IncapacityExtent, &f.IncapacityDesc, &f.SubmissionDate)
		if errors.Is(err, pgx.ErrNoRows) {
			return claims.ErrNotFound
		}
		if err != nil {
			return err
		}
		d.Form3 = f
		return nil
	case claims.Form4:
		f := &Form4Details{}
		err := r.conn(ctx).QueryRow(ctx,
			`SELECT applicant_first_name, applicant_last_name, applicant_address1,
			        applicant_city, applicant_province, applicant_phone, applicant_email,
			        annual_earnings, funeral_expenses, medical_expenses,
			        compensation_benefits_paid, death_circumstances,
			        insurer_code, insurer_name, submission_date
			   FROM form4_master WHERE irn = $1`, irn).Scan(
			&d.Applicant.FirstName, &d.Applicant.LastName, &d.Applicant.Address1,
			&d.Applicant.City, &d.Applicant.Province, &d.Applicant.Phone, &d.Applicant.Email,
			&f.AnnualEarnings, &f.FuneralExpenses, &f.MedicalExpenses,
			&f.CompensationPaid, &f.DeathCircumstances,
			&f.InsurerCode, &f.InsurerName, &f.SubmissionDate)
		if errors.Is(err, pgx.ErrNoRows) {
			return claims.ErrNotFound
		}
		if err != nil {
			return err
		}
		d.Form4 = f
		return nil
	}
	return claims.ErrNotFound
}

func (r *repoPG) InsertFormMaster(ctx context.Context, d *Draft) error {
	switch d.FormType {
	case claims.Form3:
		f := d.Form3
		_, err := r.conn(ctx).Exec(ctx,
			`INSERT INTO form3_master
			        (irn, worker_id, applicant_first_name, applicant_last_name,
			         applicant_address1, applicant_city, applicant_province,
			         applicant_phone, applicant_email, average_weekly_wage,
			         compensation_claimed, incapacity_extent, incapacity_description,
			         submission_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			d.IRN, d.WorkerID, d.Applicant.FirstName, d.Applicant.LastName,
			d.Applicant.Address1, d.Applicant.City, d.Applicant.Province,
			d.Applicant.Phone, d.Applicant.Email, f.AverageWeeklyWage,
			f.CompensationClaimed, f.IncapacityExtent, f.IncapacityDesc,
			f.SubmissionDate)
		return err
	case claims.Form4:
		f := d.Form4
		_, err := r.conn(ctx).Exec(ctx,
			`INSERT INTO form4_master
			        (irn, worker_id, applicant_first_name, applicant_last_name,
			         applicant_address1, applicant_city, applicant_province,
			         applicant_phone, applicant_email, annual_earnings,
			         funeral_expenses, medical_expenses, compensation_benefits_paid,
			         death_circumstances, insurer_code, insurer_name, submission_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
			d.IRN, d.WorkerID, d.Applicant.FirstName, d.Applicant.LastName,
			d.Applicant.Address1, d.Applicant.City, d.Applicant.Province,
			d.Applicant.Phone, d.Applicant.Email, f.AnnualEarnings,
			f.FuneralExpenses, f.MedicalExpenses, f.CompensationPaid,
			f.DeathCircumstances, f.InsurerCode, f.InsurerName, f.SubmissionDate)
		return err
	}
	return claims.ErrNotFound
}

func (r *repoPG) UpdateFormMaster(ctx context.Context, d *Draft) error {
	var tag pgconn.CommandTag
	var err error
	switch d.FormType {
	case claims.Form3:
		f := d.Form3
		tag, err = r.conn(ctx).Exec(ctx,
			`UPDATE form3_master
			    SET applicant_first_name = $2, applicant_last_name = $3,
			        applicant_address1 = $4, applicant_city = $5, applicant_province = $6,
			        applicant_phone = $7, applicant_email = $8,
			        average_weekly_wage = $9, compensation_claimed = $10,
			        incapacity_extent = $11, incapacity_description = $12
			  WHERE irn = $1`,
			d.IRN, d.Applicant.FirstName, d.Applicant.LastName,
			d.Applicant.Address1, d.Applicant.City, d.Applicant.Province,
			d.Applicant.Phone, d.Applicant.Email,
			f.AverageWeeklyWage, f.CompensationClaimed,
			f.IncapacityExtent, f.IncapacityDesc)
	case claims.Form4:
		f := d.Form4
		tag, err = r.conn(ctx).Exec(ctx,
			`UPDATE form4_master
			    SET applicant_first_name = $2, applicant_last_name = $3,
			        applicant_address1 = $4, applicant_city = $5, applicant_province = $6,
			        applicant_phone = $7, applicant_email = $8,
			        annual_earnings = $9, funeral_expenses = $10, medical_expenses = $11,
			        compensation_benefits_paid = $12, death_circumstances = $13,
			        insurer_code = $14, insurer_name = $15
			  WHERE irn = $1`,
			d.IRN, d.Applicant.FirstName, d.Applicant.LastName,
			d.Applicant.Address1, d.Applicant.City, d.Applicant.Province,
			d.Applicant.Phone, d.Applicant.Email,
			f.AnnualEarnings, f.FuneralExpenses, f.MedicalExpenses,
			f.CompensationPaid, f.DeathCircumstances,
			f.InsurerCode, f.InsurerName)
	default:
		return claims.ErrNotFound
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return claims.ErrMissingRow
	}
	return nil
}

func masterTable(formType claims.FormType) (string, error) {
	switch formType {
	case claims.Form3:
		return "form3_master", nil
	case claims.Form4:
		return "form4_master", nil
	}
	return "", claims.ErrNotFound
}

func (r *repoPG) ListDependants(ctx context.Context, workerID int64) ([]Dependant, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT dependant_id, worker_id, first_name, last_name, dob, dependant_type
		   FROM dependant WHERE worker_id = $1 ORDER BY last_name, first_name`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Dependant
	for rows.Next() {
		var dep Dependant
		if err := rows.Scan(&dep.ID, &dep.WorkerID, &dep.FirstName, &dep.LastName, &dep.DOB, &dep.Type); err != nil {
			return nil, err
		}
		items = append(items, dep)
	}
	return items, rows.Err()
}

func (r *repoPG) InsertDependant(ctx context.Context, dep *Dependant) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO dependant (dependant_id, worker_id, first_name, last_name, dob, dependant_type)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		dep.ID, dep.WorkerID, dep.FirstName, dep.LastName, dep.DOB, dep.Type)
	return err
}

func (r *repoPG) UpdateDependant(ctx context.Context, dep *Dependant) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE dependant
		    SET first_name = $2, last_name = $3, dob = $4, dependant_type = $5
		  WHERE dependant_id = $1`,
		dep.ID, dep.FirstName, dep.LastName, dep.DOB, dep.Type)
	return err
}

func (r *repoPG) DeleteDependant(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM dependant WHERE dependant_id = $1`, id)
	return err
}

func (r *repoPG) ListWorkHistory(ctx context.Context, workerID int64) ([]WorkHistoryEntry, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT entry_id, worker_id, employer_name, occupation, start_date, end_date
		   FROM work_history WHERE worker_id = $1 ORDER BY start_date`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []WorkHistoryEntry
	for rows.Next() {
		var e WorkHistoryEntry
		if err := rows.Scan(&e.ID, &e.WorkerID, &e.Employer, &e.Occupation, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *repoPG) InsertWorkHistory(ctx context.Context, e *WorkHistoryEntry) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO work_history (entry_id, worker_id, employer_name, occupation, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.WorkerID, e.Employer, e.Occupation, e.StartDate, e.EndDate)
	return err
}

func (r *repoPG) UpdateWorkHistory(ctx context.Context, e *WorkHistoryEntry) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE work_history
		    SET employer_name = $2, occupation = $3, start_date = $4, end_date = $5
		  WHERE entry_id = $1`,
		e.ID, e.Employer, e.Occupation, e.StartDate, e.EndDate)
	return err
}

func (r *repoPG) DeleteWorkHistory(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM work_history WHERE entry_id = $1`, id)
	return err
}
