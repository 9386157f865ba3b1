// Package dataprocessing loads customer purchase records and cleans them.
//
// The pipeline is fixed:
//
//  1. LoadDelimited reads the delimited input into a domain.Table.
//  2. NormalizeHeaders trims column names.
//  3. Cleaner.Clean applies the column rules in order: numeric coercion and
//     median/mean fill for Age and Price, "Unknown" fill for custName and
//     AdvertisingAgency, date coercion for DatePurchased, numeric coercion for
//     RatingOfProduct, IQR outlier clamps for Age and Price, and title-casing
//     of AdvertisingAgency. It finishes with DropDuplicates on custID.
//
// Every rule is skipped when its column is absent. Each changed cell is
// reported as a domain.CleaningOperation for the audit trail.
//
// Usage:
//
//	table, err := dataprocessing.LoadDelimited("data/dataset.txt", ',')
//	if err != nil {
//	    return err
//	}
//	dataprocessing.NormalizeHeaders(table)
//	report, err := dataprocessing.NewCleaner(logger).Clean(ctx, table)
package dataprocessing
