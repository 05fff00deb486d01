/*
Package tokenlist validates token lists against the token list JSON Schema.

A run resolves a source string to a [RemoteSource] or [LocalSource],
loads and parses it with a [Loader], checks it with a [Validator] and
reports the outcome through a [Reporter]:

	sch, err := tokenlist.CompileSchema("")
	if err != nil {
		return err
	}
	loader, err := tokenlist.NewLoader(tokenlist.DefaultConfig())
	if err != nil {
		return err
	}
	p := &tokenlist.Pipeline{
		Loader:    loader,
		Validator: tokenlist.NewValidator(sch),
		Reporter:  tokenlist.NewReporter(logger),
	}
	os.Exit(p.Run(ctx, "https://tokens.example.org/list.json", usage))

Sources starting with "http://" or "https://" are fetched with a single GET
request. Anything else is read from the filesystem, relative to the
configured base directory. Files and responses that look like YAML are
decoded as YAML; everything else must be strict JSON.

Load failures are reported as [*FetchError], [*ReadError], [*ParseError]
or [*TimeoutError]. A document that does not conform to the schema yields
a [*SchemaValidationError] listing every violation.
*/
package tokenlist
