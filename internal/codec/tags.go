package codec

// GEDCOM 5.5.1 tags understood by the decoder and emitted by the encoder
const (
	tagHead = "HEAD"
	tagIndi = "INDI"
	tagFam  = "FAM"
	tagTrlr = "TRLR"

	tagSour = "SOUR"
	tagGedc = "GEDC"
	tagVers = "VERS"
	tagForm = "FORM"
	tagChar = "CHAR"

	tagName = "NAME"
	tagSex  = "SEX"
	tagBirt = "BIRT"
	tagDeat = "DEAT"
	tagOccu = "OCCU"
	tagNote = "NOTE"
	tagFamc = "FAMC"
	tagFams = "FAMS"

	tagHusb = "HUSB"
	tagWife = "WIFE"
	tagChil = "CHIL"
	tagMarr = "MARR"
	tagDiv  = "DIV"

	tagDate = "DATE"
	tagPlac = "PLAC"

	tagCont = "CONT"
	tagConc = "CONC"
)

// gedcomVersion and gedcomForm are the header values stamped on every export
const (
	gedcomVersion = "5.5.1"
	gedcomForm    = "LINEAGE-LINKED"
	gedcomCharset = "UTF-8"
)
