package psqlbuilder

import "github.com/Masterminds/squirrel"

// builder squirrel с плейсхолдерами Postgres ($1, $2, ...)
var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select начинает SELECT запрос
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert начинает INSERT запрос
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Delete начинает DELETE запрос
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
