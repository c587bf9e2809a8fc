/*
Package postgres manages the database connection the Store appender writes through.
As part of the connection process, we also ensure that all migrations have been run on the proper database.
The situation where the database is simply a target for some testing has been considered as well.
In this scenario, we are dropping the public schema.

GORM's own warnings and slow queries are logged through a lumber Logger.
*/
package postgres
